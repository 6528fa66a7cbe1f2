package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check session state consistency across memory, file, and branch",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	store, err := newStore(cmd.Context())
	if err != nil {
		return err
	}

	status := store.CheckSync(cmd.Context())
	if status.IsConsistent {
		fmt.Println(okStyle.Render("Session state is consistent."))
		return nil
	}

	fmt.Println(errorStyle.Render("Session state is inconsistent:"))
	for _, inc := range status.Inconsistencies {
		fmt.Printf("  - %s\n", inc)
	}
	return fmt.Errorf("%d inconsistencies found", len(status.Inconsistencies))
}
