package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scribehq/scribe/internal/session"
)

var shutdownCmd = &cobra.Command{
	Use:   "shutdown",
	Short: "Record an intentional exit so the next start skips recovery",
	RunE:  runShutdown,
}

func init() {
	rootCmd.AddCommand(shutdownCmd)
}

func runShutdown(cmd *cobra.Command, args []string) error {
	store, err := newStore(cmd.Context())
	if err != nil {
		return err
	}

	if err := session.WriteExitFlag(store.Resolver()); err != nil {
		return fmt.Errorf("failed to record exit intent: %w", err)
	}

	store.Clear()
	fmt.Println(okStyle.Render("Clean exit recorded."))
	return nil
}
