package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/errors"
)

const defaultGenerateCount = 24

// generateCommand creates the generate command for writing sample boards.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		count  int
		seed   uint64
		name   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random board",
		Long: `Generate a random board of tiles with varied aspect ratios.

The same --seed always produces the same board. The output format follows the
file extension (.json or .toml).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "count must be positive, got %d", count)
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			if name == "" {
				name = board.NameFromPath(output)
			}

			b := board.Generate(name, count, seed)
			if err := board.WriteBoardFile(output, b); err != nil {
				return fmt.Errorf("write board %s: %w", output, err)
			}
			c.Logger.Debug("generated board", "name", b.Name, "tiles", count, "seed", seed)

			printSuccess("Generated %d tiles", count)
			printFile(output)
			printDetail("seed %d", seed)
			printNewline()
			printNextStep("Preview", appName+" preview "+output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", defaultGenerateCount, "number of tiles")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: current time)")
	cmd.Flags().StringVar(&name, "name", "", "board name (default: output file name)")
	cmd.Flags().StringVarP(&output, "output", "o", "board.json", "output file (.json or .toml)")

	return cmd
}
