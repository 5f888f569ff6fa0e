package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newSessionsCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage server sessions",
	}
	cmd.AddCommand(newSessionsCreateCmd(client))
	cmd.AddCommand(newSessionsListCmd(client))
	cmd.AddCommand(newSessionsCloseCmd(client))
	return cmd
}

func newSessionsCreateCmd(client *Client) *cobra.Command {
	var (
		id   string
		name string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := client.CreateSession(id, name)
			if err != nil {
				return err
			}

			quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
			if quiet {
				fmt.Fprintln(os.Stdout, info.ID)
				return nil
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, info)
			}
			fmt.Fprintf(os.Stdout, "Session %q created\n", info.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Session id (server-generated when omitted)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")

	return cmd
}

func newSessionsListCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := client.ListSessions()
			if err != nil {
				return err
			}

			quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
			if quiet {
				for _, s := range sessions {
					fmt.Fprintln(os.Stdout, s.ID)
				}
				return nil
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, sessions)
			}
			rows := make([][]string, len(sessions))
			for i, s := range sessions {
				rows[i] = []string{
					s.ID,
					s.Name,
					fmt.Sprintf("%d", s.Statements),
					fmt.Sprintf("%d", s.Tables),
					s.LastUsedAt,
				}
			}
			printTable(os.Stdout, []string{"id", "name", "statements", "tables", "last used"}, rows)
			return nil
		},
	}
}

func newSessionsCloseCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Close a session and discard its tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.CloseSession(args[0]); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]string{"status": "ok", "closed": args[0]})
			}
			fmt.Fprintf(os.Stdout, "Session %q closed\n", args[0])
			return nil
		},
	}
}
