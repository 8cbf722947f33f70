package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ja-ri/HabitQuest/internal/engine"
	"github.com/ja-ri/HabitQuest/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <username> <habit-id>",
		Short: "Complete a habit for today",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("username and habit id are required")
			}
			if _, err := strconv.Atoi(args[1]); err != nil {
				return errors.New("habit id must be an integer")
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
			habitID, _ := strconv.Atoi(args[1])
			today := engine.Today(time.Now())

			st, err := a.svc.Login(ctx, username)
			if err != nil {
				return err
			}
			st, _ = a.svc.Rollover(username, st, today)

			out := cmd.OutOrStdout()
			if st.IsCompleted(habitID) {
				fmt.Fprintln(out, ui.Muted.Render("Already done today."))
				return nil
			}

			next, notes, err := a.svc.CompleteHabit(username, st, habitID, today)
			if err != nil {
				return err
			}

			habit, _ := a.svc.Catalog().Get(habitID)
			fmt.Fprintf(out, "%s %s +%d XP\n", ui.Good.Render(ui.IconDone), habit.Name, habit.XPValue)
			for _, n := range notes {
				switch n.Kind {
				case engine.NotificationLevelUp:
					fmt.Fprintln(out, ui.BannerLevelUp.Render(n.Message))
				case engine.NotificationStreakBonus:
					fmt.Fprintln(out, ui.BannerStreak.Render(n.Message))
				}
			}
			fmt.Fprintln(out, ui.LabelValue("Level", next.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d / %d", next.XP, engine.XPRequiredForLevel(next.Level))))
			fmt.Fprintln(out, ui.StreakText(next.Streak))
			return nil
		},
	}

	return cmd
}
