package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := newStore(cmd.Context())
	if err != nil {
		return err
	}

	current := store.Current()
	if current == nil {
		fmt.Println(mutedStyle.Render("No active session."))
		return nil
	}

	scope := current.ProjectName
	if scope == "" {
		scope = "(no project)"
	}

	fmt.Println(titleStyle.Render("Current session"))
	fmt.Printf("%s %s\n", labelStyle.Render("Project:"), scope)
	fmt.Printf("%s %s\n", labelStyle.Render("Session:"), current.ID)
	if current.BaseDir != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Base dir:"), current.BaseDir)
	}
	if current.GitBranch != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Branch:"), current.GitBranch)
	}
	fmt.Printf("%s %d\n", labelStyle.Render("Open files:"), len(current.ActiveFiles))
	fmt.Printf("%s %s\n", labelStyle.Render("Modified:"), humanize.Time(current.Metadata.LastModified))
	return nil
}
