package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/errors"
)

// measureCommand creates the measure command for recording tile heights.
func (c *CLI) measureCommand() *cobra.Command {
	var (
		reset   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "measure [board|board.json] [tile=height...]",
		Short: "Record measured tile heights for a board",
		Long: `Record measured tile heights for a board.

Heights are persisted per board name and applied to every later layout of
that board, replacing the tile's aspect-ratio estimate. Keys are tile IDs,
or i:<index> for tiles without one.

With no heights given, the persisted heights are listed.

  masonry measure gallery sunset=412 i:3=180
  masonry measure gallery.json --reset`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := boardName(args[0])
			if err := errors.ValidateBoardName(name); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache, nil)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			if reset {
				if err := runner.ClearHeights(ctx, name); err != nil {
					return err
				}
				printSuccess("Cleared heights for %s", name)
				return nil
			}

			if len(args) == 1 {
				heights, err := runner.LoadHeights(ctx, name)
				if err != nil {
					return err
				}
				if len(heights) == 0 {
					printInfo("No heights recorded for %s", name)
					return nil
				}
				lines := make([][2]string, 0, len(heights))
				for k, v := range heights {
					lines = append(lines, [2]string{k.String(), strconv.FormatFloat(v, 'f', -1, 64)})
				}
				slices.SortFunc(lines, func(a, b [2]string) int { return strings.Compare(a[0], b[0]) })
				for _, l := range lines {
					printKeyValue(l[0], l[1])
				}
				return nil
			}

			reported, err := parseMeasurements(args[1:])
			if err != nil {
				return err
			}
			changed, err := runner.ReportHeights(ctx, name, reported)
			if err != nil {
				return err
			}

			printSuccess("Recorded %d heights for %s", len(reported), name)
			printDetail("%d changed", changed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "forget every height recorded for the board")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching (nothing is persisted)")

	return cmd
}

// parseMeasurements parses "key=height" arguments. The last "=" separates
// the height so tile IDs may contain "=".
func parseMeasurements(args []string) (map[string]float64, error) {
	out := make(map[string]float64, len(args))
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "measurement %q: expected tile=height", arg)
		}
		h, err := strconv.ParseFloat(arg[i+1:], 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "measurement %q", arg)
		}
		out[arg[:i]] = h
	}
	return out, nil
}
