package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var switchCmd = &cobra.Command{
	Use:   "switch <project>",
	Short: "Make a project the active session scope",
	Args:  cobra.ExactArgs(1),
	RunE:  runSwitch,
}

func init() {
	rootCmd.AddCommand(switchCmd)
}

func runSwitch(cmd *cobra.Command, args []string) error {
	store, err := newStore(cmd.Context())
	if err != nil {
		return err
	}

	current, err := store.SwitchTo(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", okStyle.Render("Switched to project"), current.ProjectName)
	fmt.Printf("%s %s\n", labelStyle.Render("Session:"), current.ID)
	fmt.Printf("%s %s\n", labelStyle.Render("Base dir:"), current.BaseDir)
	return nil
}
