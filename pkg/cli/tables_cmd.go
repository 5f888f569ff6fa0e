package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newTablesCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Inspect tables",
	}
	cmd.AddCommand(newTablesListCmd(client))
	cmd.AddCommand(newTablesDescribeCmd(client))
	return cmd
}

func newTablesListCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tables in the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := client.ListTables()
			if err != nil {
				return err
			}

			quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
			if quiet {
				for _, t := range tables {
					fmt.Fprintln(os.Stdout, t.Name)
				}
				return nil
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, tables)
			}
			rows := make([][]string, len(tables))
			for i, t := range tables {
				rows[i] = []string{t.Name, fmt.Sprintf("%d", t.ColumnCount), fmt.Sprintf("%d", t.RowCount)}
			}
			printTable(os.Stdout, []string{"name", "columns", "rows"}, rows)
			return nil
		},
	}
}

func newTablesDescribeCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <table>",
		Short: "Show a table's columns, row count, and DDL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := client.DescribeTable(args[0])
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, info)
			}
			rows := make([][]string, len(info.Columns))
			for i, c := range info.Columns {
				rows[i] = []string{c.Name, c.Type}
			}
			printTable(os.Stdout, []string{"column", "type"}, rows)
			fmt.Fprintf(os.Stdout, "%d rows\n%s\n", info.RowCount, info.DDL)
			return nil
		},
	}
}
