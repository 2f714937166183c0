package commands

import (
	"github.com/penwyp/go-timelog/internal/core/constants"
	"github.com/penwyp/go-timelog/internal/presentation/display"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the latest entries of the log",
	Long:  `Prints the last entries, keeping each arrival marker together with the task that follows it.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVarP(&listLimit, "limit", "n", constants.DefaultListLimit,
		"Number of entries to show (0 = all)")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}

	entries, err := a.store.Tail(listLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	display.NewTerminalDisplay(cmd.OutOrStdout(), a.cfg.Currency).Lines(entries)
	return nil
}
