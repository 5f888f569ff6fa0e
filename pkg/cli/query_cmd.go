package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newQueryCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Execute one SQL statement",
		Long:  "Execute one SQL statement from the argument or stdin and print the result.",
		Example: `  # Inline statement
  minidb query "SELECT * FROM students WHERE id = 1"

  # From a pipe
  echo "SELECT name FROM students;" | minidb query

  # Against a named session, as JSON
  minidb query -s etl -o json "SELECT * FROM staged"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sql string
			if len(args) == 1 {
				sql = args[0]
			}

			// Read from stdin if no argument
			if sql == "" {
				stat, _ := os.Stdin.Stat()
				if (stat.Mode() & os.ModeCharDevice) == 0 {
					data, err := io.ReadAll(os.Stdin)
					if err != nil {
						return fmt.Errorf("read stdin: %w", err)
					}
					sql = strings.TrimSpace(string(data))
				}
			}

			if sql == "" {
				return fmt.Errorf("provide SQL as an argument or via stdin pipe")
			}

			result, err := client.Query(sql)
			if err != nil {
				return err
			}

			quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
			if quiet {
				fmt.Fprintln(os.Stdout, result.RowCount)
				return nil
			}
			// The row count goes to stderr so piped table output stays clean.
			return printQueryResult(os.Stdout, os.Stderr, getOutputFormat(cmd), result)
		},
	}
	return cmd
}

// printQueryResult renders one statement result. Row sets become a table
// (or JSON); mutations print the statement verb and affected row count.
func printQueryResult(w, statusW io.Writer, format string, result *QueryResult) error {
	if format == "json" {
		return printJSON(w, result)
	}
	if len(result.Columns) == 0 {
		msg := result.Statement
		if result.RowCount > 0 {
			msg = fmt.Sprintf("%s (%d rows)", msg, result.RowCount)
		}
		_, _ = fmt.Fprintln(statusW, msg)
		return nil
	}
	printTable(w, result.Columns, formatRows(result.Rows))
	_, _ = fmt.Fprintf(statusW, "(%d rows)\n", result.RowCount)
	return nil
}
