package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/disiqueira/gotree/v3"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tacogips/deckgen/internal/app"
	"github.com/tacogips/deckgen/internal/deck"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [generator-dir]",
	Short: "Validate the content tree and show its slides",
	Long: `Locate the content directory, validate every slide group and print
the slides in presentation order. Nothing is written.

Examples:
  deckgen inspect
  deckgen inspect ./generator --table`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

// Inspect command flags
var inspectTable bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectTable, FlagTable, false, DescTable)
}

func runInspect(cmd *cobra.Command, args []string) error {
	s := current
	s.DistDir = ""
	opts, err := appOptions(s, args)
	if err != nil {
		return err
	}

	c, plan, err := app.Inspect(cmd.Context(), opts)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if inspectTable {
		printSlideTable(w, plan)
	} else {
		fmt.Fprint(w, slideTree(c, plan))
	}

	printSuccess(fmt.Sprintf("%d slide group(s), %d slide(s) valid", len(plan.Groups), plan.SlideCount()))
	return nil
}

// slideTree renders the plan as groups and slides under the presentation.
func slideTree(c *app.Context, plan *app.Plan) string {
	root := gotree.New(fmt.Sprintf("%s -> %s", c.Config.Presentation.Title, c.Config.Presentation.Filename))
	content := root.Add(plan.ContentRoot.Path)
	for _, g := range plan.Groups {
		group := content.Add(g.Name)
		for _, s := range g.Slides {
			label := s.Name
			if asset, ok := g.Assets[s.Name]; ok {
				label += " [" + asset.Name + "]"
			}
			group.Add(label)
		}
	}
	return root.Print()
}

// printSlideTable writes one row per slide.
func printSlideTable(w io.Writer, plan *app.Plan) {
	table := tablewriter.NewWriter(w)

	table.SetHeader([]string{"Group", "Slide", "Fields", "Background"})

	for _, g := range plan.Groups {
		for _, s := range g.Slides {
			background := ""
			if asset, ok := g.Assets[s.Name]; ok {
				background = fmt.Sprintf("%s (%s)", asset.Name, formatBytes(int64(asset.Size())))
			}
			table.Append([]string{g.Name, s.Name, fieldNames(s), background})
		}
	}

	table.Render()
}

func fieldNames(s deck.Slide) string {
	names := make([]string, 0, len(s.Fields))
	for k := range deck.Prune(s.Fields) {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
