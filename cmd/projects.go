package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List known projects and their session files",
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, args []string) error {
	store, err := newStore(cmd.Context())
	if err != nil {
		return err
	}

	infos := store.ListProjects()
	if len(infos) == 0 {
		fmt.Println(mutedStyle.Render("No session files found."))
		return nil
	}

	for _, info := range infos {
		name := info.ProjectName
		if name == "" {
			name = "(no project)"
		}

		marker := " "
		if info.IsActive {
			marker = okStyle.Render("*")
		}

		fmt.Printf("%s %s\n", marker, titleStyle.Render(name))
		fmt.Printf("    %s %s\n", labelStyle.Render("file:"), info.SessionFile)
		fmt.Printf("    %s %d operations, modified %s\n",
			labelStyle.Render("log:"), info.OperationCount, humanize.Time(info.LastModified))
		if info.GitBranch != "" {
			fmt.Printf("    %s %s\n", labelStyle.Render("branch:"), info.GitBranch)
		}
		if !info.BaseDir.IsValid {
			fmt.Printf("    %s %s\n", warnStyle.Render("baseDir:"), info.BaseDir.Error)
		}
	}
	return nil
}
