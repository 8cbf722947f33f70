package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ja-ri/HabitQuest/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "hq",
	Short:         "HabitQuest — daily habits with RPG progression",
	Long:          "HabitQuest is a local-first habit tracker: check off daily habits, earn XP, level up, and keep your streak alive.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newBoardCmd(),
		newStatusCmd(),
		newDoCmd(),
		newHabitsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
