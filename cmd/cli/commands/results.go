package commands

import (
	"fmt"

	"github.com/meitohealth/duty-roster/pkg/core/model"
	"github.com/meitohealth/duty-roster/pkg/core/services"
)

// printBatchResult renders a staged batch result for operator review
func printBatchResult(result *services.RunBatchResult) {
	fmt.Printf("\n🗓  Roster Assignment Results\n\n")
	fmt.Printf("Run ID:  %s\n", result.Pipeline.RunID)
	fmt.Printf("Window:  %s .. %s\n", result.Window.Start, result.Window.End)
	if result.DryRun {
		fmt.Printf("Mode:    🧪 DRY RUN (not saved)\n")
	} else {
		fmt.Printf("Mode:    saved (%d inserted, %d skipped as already present)\n",
			result.Inserted, result.Skipped)
	}
	fmt.Println()

	for i, step := range result.Pipeline.Steps {
		best := step.Result.Best
		fmt.Printf("Step %d", i+1)
		if step.PresetID != "" {
			fmt.Printf(" [%s]", step.PresetID)
		}
		fmt.Printf(": slot type %s, kept trial %d of %d\n",
			step.Config.SlotTypeID,
			step.Result.BestIndex+1,
			len(step.Result.Trials))

		for _, a := range best.Assignments {
			tag := ""
			switch a.Kind {
			case model.KindOnCallPrimary:
				tag = " (on call)"
			case model.KindOnCallRest:
				tag = " (post-duty rest)"
			}
			fmt.Printf("  %s  %s → %s%s\n", a.Date, a.SlotTypeID, a.MemberID, tag)
		}

		if len(best.UnassignedDates) > 0 {
			fmt.Printf("  ⚠️  Unassigned dates (%d):\n", len(best.UnassignedDates))
			for _, d := range best.UnassignedDates {
				fmt.Printf("    • %s\n", d)
			}
		}
		if len(best.SkippedDates) > 0 {
			fmt.Printf("  Skipped (already covered): %d\n", len(best.SkippedDates))
		}
		fmt.Println()
	}

	if len(result.Pipeline.UnassignedDates) == 0 {
		fmt.Println("✅ All target dates covered.")
	} else {
		fmt.Printf("❌ %d dates need manual handling.\n", len(result.Pipeline.UnassignedDates))
	}
	if result.DryRun {
		fmt.Println("💡 This was a dry run. Use --commit to save assignments.")
	}
}
