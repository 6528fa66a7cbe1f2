package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [project]",
	Short: "Discard the current session and start a fresh one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	store, err := newStore(cmd.Context())
	if err != nil {
		return err
	}

	project := ""
	if len(args) > 0 {
		project = args[0]
	}

	result := store.StartNew(cmd.Context(), project)
	if !result.Success {
		return fmt.Errorf("failed to start new session: %s", result.Error)
	}

	if project != "" {
		fmt.Printf("%s %s\n", okStyle.Render("Started session for project"), project)
	} else {
		fmt.Println(okStyle.Render("Started new workspace session"))
	}
	fmt.Printf("%s %s\n", labelStyle.Render("Session:"), result.NewSession.ID)
	return nil
}
