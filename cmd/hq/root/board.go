package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ja-ri/HabitQuest/internal/session"
	"github.com/ja-ri/HabitQuest/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board [username]",
		Short: "Open the interactive habit board",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			username := ""
			if len(args) == 1 {
				username = args[0]
			}

			ticker := session.New(a.cfg.RolloverInterval)
			ticker.Start()
			defer ticker.Stop()

			return tui.RunBoard(ctx, a.svc, ticker, username, cmd.OutOrStdout())
		},
	}

	return cmd
}
