package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"minidb/internal/minisql"
)

func newReplCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive SQL shell",
		Long: `Interactive SQL shell. Statements run when terminated with ';' and may
span lines. Meta commands:

  \tables       list tables
  \d <table>    describe a table
  \history      recent statements
  \q            quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			interactive := term.IsTerminal(int(os.Stdin.Fd()))
			r := &repl{
				client:      client,
				out:         os.Stdout,
				format:      getOutputFormat(cmd),
				interactive: interactive,
			}
			return r.run(os.Stdin)
		},
	}
}

// repl holds the state of one interactive session: the pending statement
// buffer and the output writer.
type repl struct {
	client      *Client
	out         io.Writer
	format      string // resolved --output format
	interactive bool
	buf         strings.Builder
}

func (r *repl) run(in io.Reader) error {
	if r.interactive {
		fmt.Fprintf(r.out, "minidb %s. Statements end with ';'. Type \\q to quit.\n", version)
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	r.prompt()
	for scanner.Scan() {
		quit, err := r.handleLine(scanner.Text())
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
		r.prompt()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if r.interactive {
		fmt.Fprintln(r.out)
	}
	return nil
}

func (r *repl) prompt() {
	if !r.interactive {
		return
	}
	if r.buf.Len() > 0 {
		fmt.Fprint(r.out, "  ... ")
		return
	}
	fmt.Fprint(r.out, "minidb> ")
}

// handleLine consumes one input line. Meta commands dispatch immediately;
// SQL accumulates until a terminating semicolon, then every complete
// statement runs in order.
func (r *repl) handleLine(line string) (quit bool, err error) {
	trimmed := strings.TrimSpace(line)

	if r.buf.Len() == 0 {
		if trimmed == "" {
			return false, nil
		}
		if strings.HasPrefix(trimmed, "\\") {
			return r.handleMeta(trimmed)
		}
	}

	r.buf.WriteString(line)
	r.buf.WriteByte('\n')

	// A statement may span lines; only a buffer ending in ';' is complete.
	// Semicolons inside strings or comments do not count because splitting
	// runs on lexer output.
	if !strings.HasSuffix(strings.TrimSpace(r.buf.String()), ";") {
		return false, nil
	}

	text := r.buf.String()
	r.buf.Reset()

	stmts, err := minisql.SplitStatements(text)
	if err != nil {
		return false, err
	}
	for _, stmt := range stmts {
		if err := r.execute(stmt); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (r *repl) execute(sql string) error {
	result, err := r.client.Query(sql)
	if err != nil {
		return err
	}
	return printQueryResult(r.out, r.out, r.format, result)
}

func (r *repl) handleMeta(line string) (quit bool, err error) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case `\q`, `\quit`:
		return true, nil
	case `\tables`:
		return false, r.showTables()
	case `\d`:
		if arg == "" {
			return false, fmt.Errorf(`\d needs a table name`)
		}
		return false, r.describe(arg)
	case `\history`:
		return false, r.showHistory()
	default:
		return false, fmt.Errorf(`unknown command %q (try \tables, \d <table>, \history, \q)`, cmd)
	}
}

func (r *repl) showTables() error {
	tables, err := r.client.ListTables()
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		fmt.Fprintln(r.out, "no tables")
		return nil
	}
	rows := make([][]string, len(tables))
	for i, t := range tables {
		rows[i] = []string{t.Name, fmt.Sprintf("%d", t.ColumnCount), fmt.Sprintf("%d", t.RowCount)}
	}
	printTable(r.out, []string{"name", "columns", "rows"}, rows)
	return nil
}

func (r *repl) describe(name string) error {
	info, err := r.client.DescribeTable(name)
	if err != nil {
		return err
	}
	rows := make([][]string, len(info.Columns))
	for i, c := range info.Columns {
		rows[i] = []string{c.Name, c.Type}
	}
	printTable(r.out, []string{"column", "type"}, rows)
	fmt.Fprintf(r.out, "%d rows\n%s\n", info.RowCount, info.DDL)
	return nil
}

func (r *repl) showHistory() error {
	page, err := r.client.History(HistoryOptions{MaxResults: 20})
	if err != nil {
		return err
	}
	rows := make([][]string, len(page.Entries))
	for i, e := range page.Entries {
		status := e.Status
		if e.ErrorMessage != nil {
			status = fmt.Sprintf("%s: %s", e.Status, *e.ErrorMessage)
		}
		rows[i] = []string{fmt.Sprintf("%d", e.ID), e.SQL, status}
	}
	printTable(r.out, []string{"id", "sql", "status"}, rows)
	return nil
}
