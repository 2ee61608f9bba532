package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meitohealth/duty-roster/pkg/core/services"
)

// ListPresetsCmd creates the listPresets command
func ListPresetsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listPresets",
		Short: "List the stored assignment presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := services.ListPresets(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to list presets: %w", err)
			}

			if len(presets) == 0 {
				fmt.Println("No presets stored.")
				return nil
			}

			fmt.Printf("\n📋 Presets (%d)\n\n", len(presets))
			for _, p := range presets {
				fmt.Printf("  %s  %s\n", p.ID, p.Name)
				fmt.Printf("      kind=%s slot=%s fairness=%s capScope=%s",
					p.Config.Kind, p.Config.SlotTypeID, p.Config.Fairness, p.Config.CapScope)
				if p.Config.MaxAssignments != nil {
					fmt.Printf(" max=%d", *p.Config.MaxAssignments)
				}
				fmt.Println()
			}
			fmt.Println()
			return nil
		},
	}
}
