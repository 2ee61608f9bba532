package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meitohealth/duty-roster/internal/config"
	"github.com/meitohealth/duty-roster/pkg/core/engine"
	"github.com/meitohealth/duty-roster/pkg/core/model"
	"github.com/meitohealth/duty-roster/pkg/core/services"
)

// RunBatchCmd creates the runBatch command
func RunBatchCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runBatch <batch_file> <start> <end>",
		Short: "Run an ordered list of assignment steps over one snapshot",
		Long: "Load a YAML batch definition, run each step in order so later " +
			"steps see earlier results, and report the combined roster",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			batchFile := args[0]
			window := model.DateRange{Start: args[1], End: args[2]}
			trials, _ := cmd.Flags().GetInt("trials")
			seed, _ := cmd.Flags().GetInt64("seed")
			commit, _ := cmd.Flags().GetBool("commit")

			batch, err := config.LoadBatch(batchFile)
			if err != nil {
				return fmt.Errorf("failed to load batch: %w", err)
			}

			app.Logger.Debug("runBatch command",
				zap.String("batch", batch.Name),
				zap.Int("steps", len(batch.Steps)),
				zap.Bool("commit", commit))

			steps := make([]engine.Step, 0, len(batch.Steps))
			for _, s := range batch.Steps {
				steps = append(steps, engine.Step{
					PresetID:       s.PresetID,
					SlotTypeID:     s.SlotTypeID,
					MaxAssignments: s.MaxAssignments,
					DateRRule:      s.DateRRule,
				})
			}
			if trials == 0 {
				trials = batch.TrialCount
			}

			result, err := services.RunBatch(
				app.Ctx, app.Database, app.Logger,
				steps, window, trials, seed, !commit,
			)
			if err != nil {
				return fmt.Errorf("batch failed: %w", err)
			}

			fmt.Printf("\n📦 Batch: %s\n", batch.Name)
			printBatchResult(result)
			return nil
		},
	}

	cmd.Flags().Int("trials", 0, "Trial count (0 uses the batch or configured default)")
	cmd.Flags().Int64("seed", 0, "Seed for random decisions (0 picks one)")
	cmd.Flags().Bool("commit", false, "Persist the winning assignments")

	return cmd
}
