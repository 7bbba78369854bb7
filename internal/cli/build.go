package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/deckgen/internal/app"
	"github.com/tacogips/deckgen/internal/config"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build [generator-dir]",
	Short: "Render the presentation into the distribution directory",
	Long: `Render every slide group into one presentation file.

All slide groups are validated first. If any slide is missing from its
group configuration or references a background image that does not exist,
nothing is written. Otherwise the images directory of the distribution
directory is cleared, referenced backgrounds are copied into it and the
presentation is written next to it.

Examples:
  deckgen build
  deckgen build ./generator
  deckgen build ./generator --dist /srv/www/talk
  DECKGEN_AUTOESCAPE=true deckgen build`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP(FlagDist, "d", "", DescDist)
	buildCmd.Flags().Bool(FlagAutoescape, false, DescAutoescape)

	bindSetting(KeyDistDir, buildCmd.Flags().Lookup(FlagDist))
	bindSetting(KeyAutoescape, buildCmd.Flags().Lookup(FlagAutoescape))
}

func runBuild(cmd *cobra.Command, args []string) error {
	opts, err := appOptions(current, args)
	if err != nil {
		return err
	}

	printProgress(fmt.Sprintf("Building presentation from %s", opts.GeneratorDir))

	result, err := app.Build(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if result.Slides == 0 {
		printWarning("The presentation has no slides")
	}
	printSuccess(fmt.Sprintf("Wrote %s", result.OutputPath))
	printInfo(fmt.Sprintf("  %d slide group(s), %d slide(s), %d image(s)", result.Groups, result.Slides, len(result.Images)))

	return nil
}

// appOptions builds pipeline options from settings. A positional
// generator directory overrides the generator_dir setting.
func appOptions(s config.Settings, args []string) (app.Options, error) {
	if len(args) > 0 {
		s.GeneratorDir = args[0]
	}
	generatorDir, distDir, err := resolveDirs(s)
	if err != nil {
		return app.Options{}, err
	}
	return app.Options{GeneratorDir: generatorDir, DistDir: distDir}, nil
}
