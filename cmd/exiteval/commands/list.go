package commands

import (
	"os"

	"exiteval/pkg/core"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available components",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := make([]string, 0, len(core.AllTasks()))
			for _, task := range core.AllTasks() {
				tasks = append(tasks, string(task))
			}
			writeList("Tasks", tasks)
			writeList("Policies", []string{"final", "oracle", "exit-N"})
			writeList("Formats", []string{"table", "json", "markdown", "csv"})
			return nil
		},
	}
	return cmd
}

func writeList(title string, items []string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{title})
	for _, item := range items {
		table.Append([]string{item})
	}
	table.Render()
}
