package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meitohealth/duty-roster/pkg/core/model"
	"github.com/meitohealth/duty-roster/pkg/core/services"
)

// AssignOnCallCmd creates the assignOnCall command
func AssignOnCallCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignOnCall <preset_id> <start> <end>",
		Short: "Auto-assign night duty slots from a stored preset",
		Long:  "Run the multi-trial assignment algorithm for an on-call preset over the given date range",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			presetID := args[0]
			window := model.DateRange{Start: args[1], End: args[2]}
			trials, _ := cmd.Flags().GetInt("trials")
			seed, _ := cmd.Flags().GetInt64("seed")
			commit, _ := cmd.Flags().GetBool("commit")

			app.Logger.Debug("assignOnCall command",
				zap.String("preset_id", presetID),
				zap.Int("trials", trials),
				zap.Bool("commit", commit))

			result, err := services.AssignStep(
				app.Ctx, app.Database, app.Logger,
				presetID, window, trials, seed, !commit,
			)
			if err != nil {
				return fmt.Errorf("assignment failed: %w", err)
			}

			printBatchResult(result)
			return nil
		},
	}

	cmd.Flags().Int("trials", 0, "Trial count (0 uses the configured default)")
	cmd.Flags().Int64("seed", 0, "Seed for random decisions (0 picks one)")
	cmd.Flags().Bool("commit", false, "Persist the winning assignments")

	return cmd
}
