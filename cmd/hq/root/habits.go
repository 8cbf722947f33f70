package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ja-ri/HabitQuest/internal/engine"
	"github.com/ja-ri/HabitQuest/internal/ui"
)

func newHabitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habits",
		Short: "List the habit catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.H2.Render("Habits"))
			for _, h := range engine.DefaultHabits {
				fmt.Fprintf(out, "%2d  %-12s %s\n", h.ID, h.Name, ui.Muted.Render(fmt.Sprintf("+%d XP", h.XPValue)))
			}
			return nil
		},
	}

	return cmd
}
