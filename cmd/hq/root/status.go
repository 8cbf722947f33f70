package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ja-ri/HabitQuest/internal/engine"
	"github.com/ja-ri/HabitQuest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <username>",
		Short: "Show level, XP, streak, and today's checklist",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("username is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			username := args[0]
			st, err := a.svc.Login(ctx, username)
			if err != nil {
				return err
			}
			st, _ = a.svc.Rollover(username, st, engine.Today(time.Now()))

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Habit Quest"))
			fmt.Fprintln(out, ui.LabelValue("User", username))
			fmt.Fprintln(out, ui.LabelValue("Level", st.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d / %d", st.XP, engine.XPRequiredForLevel(st.Level))))
			fmt.Fprintln(out, ui.StreakText(st.Streak))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Today"))
			for _, h := range a.svc.Catalog().Habits() {
				fmt.Fprintf(out, "%s %2d  %s %s\n",
					ui.CheckBox(st.IsCompleted(h.ID)),
					h.ID,
					h.Name,
					ui.Muted.Render(fmt.Sprintf("(+%d XP)", h.XPValue)))
			}
			return nil
		},
	}

	return cmd
}
