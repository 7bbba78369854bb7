package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tacogips/deckgen/internal/config"
	"github.com/tacogips/deckgen/internal/debug"
	"github.com/tacogips/deckgen/internal/render"
	"github.com/tacogips/deckgen/internal/version"
)

// Alias version variables for compatibility
var (
	Version   = version.Version
	GitCommit = version.GitCommit
	BuildDate = version.BuildDate
)

// settings resolves tool settings from flags, DECKGEN_* environment
// variables and defaults, in that order.
var settings = viper.New()

// Resolved settings of the current run
var (
	current     = config.DefaultSettings()
	globalQuiet bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deckgen",
	Short: "Slide presentation generator",
	Long: `deckgen assembles an HTML slide presentation from a directory tree.

The generator directory holds config.yaml and templates/. The content
directory it names (looked up next to the generator directory, then one
level up) lists slide groups in order; each group lists its slides.

Use "deckgen build [generator-dir]" to render the presentation into dist/.
Use "deckgen inspect [generator-dir]" to check the content without writing.

Every setting can also be given as an environment variable, for example
DECKGEN_DIST_DIR=/srv/www or DECKGEN_DEBUG=true.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		applySettings(s)

		outWriter = cmd.OutOrStdout()
		errWriter = cmd.ErrOrStderr()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().Bool(FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolP(FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().Bool(FlagDebug, false, DescDebug)

	initSettings()
	bindSetting(KeyNoColor, rootCmd.PersistentFlags().Lookup(FlagNoColor))
	bindSetting(KeyQuiet, rootCmd.PersistentFlags().Lookup(FlagQuiet))
	bindSetting(KeyDebug, rootCmd.PersistentFlags().Lookup(FlagDebug))

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}

func initSettings() {
	defaults := config.DefaultSettings()
	settings.SetDefault(KeyGeneratorDir, defaults.GeneratorDir)
	settings.SetDefault(KeyDistDir, defaults.DistDir)
	settings.SetDefault(KeyAutoescape, defaults.Autoescape)
	settings.SetDefault(KeyNoColor, defaults.NoColor)
	settings.SetDefault(KeyQuiet, defaults.Quiet)
	settings.SetDefault(KeyDebug, defaults.Debug)

	settings.SetEnvPrefix(config.EnvPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	settings.AutomaticEnv()
}

func bindSetting(key string, flag *pflag.Flag) {
	if err := settings.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding setting %s: %v", key, err))
	}
}

// loadSettings decodes the resolved settings into config.Settings.
func loadSettings() (config.Settings, error) {
	s := config.DefaultSettings()
	if err := settings.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}

func applySettings(s config.Settings) {
	current = s
	globalQuiet = s.Quiet

	debug.SetDebug(s.Debug)
	debug.SetNoColor(s.NoColor)
	if s.NoColor {
		color.NoColor = true
	}
	render.SetAutoescape(s.Autoescape)

	debug.DebugYAML("[cli] Settings", s)
}
