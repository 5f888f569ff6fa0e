package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newHistoryCmd(client *Client) *cobra.Command {
	var (
		session    string
		status     string
		statement  string
		maxResults int
		pageToken  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List executed statements, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := client.History(HistoryOptions{
				Session:    session,
				Status:     status,
				Statement:  statement,
				MaxResults: maxResults,
				PageToken:  pageToken,
			})
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, page)
			}

			rows := make([][]string, len(page.Entries))
			for i, e := range page.Entries {
				detail := ""
				if e.ErrorMessage != nil {
					detail = *e.ErrorMessage
				} else if e.RowCount != nil {
					detail = fmt.Sprintf("%d rows", *e.RowCount)
				}
				rows[i] = []string{
					fmt.Sprintf("%d", e.ID),
					e.SessionID,
					e.Statement,
					e.Status,
					fmt.Sprintf("%dms", e.DurationMs),
					detail,
					e.SQL,
				}
			}
			printTable(os.Stdout, []string{"id", "session", "statement", "status", "duration", "detail", "sql"}, rows)
			if page.NextPageToken != "" {
				fmt.Fprintf(os.Stderr, "\nmore results: --page-token %s\n", page.NextPageToken)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session-filter", "", "Only entries from this session")
	cmd.Flags().StringVar(&status, "status", "", "Only entries with this status (success, error)")
	cmd.Flags().StringVar(&statement, "statement", "", "Only entries for this statement kind (e.g. SELECT)")
	cmd.Flags().IntVar(&maxResults, "max-results", 50, "Page size")
	cmd.Flags().StringVar(&pageToken, "page-token", "", "Continue from a previous page")

	return cmd
}
