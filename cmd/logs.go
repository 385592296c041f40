package cmd

import (
	"bufio"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/plantview/cli"
	"github.com/grovetools/plantview/errors"
	"github.com/grovetools/plantview/logging"
	"github.com/grovetools/plantview/tui"
	"github.com/grovetools/plantview/tui/components/logviewer"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the dashboard log file",
		Long: `Prints the plantview log file: the configured logging.file.path, or the
newest plantview-<date>.log in the state directory. The dashboard writes
its logs there because the terminal is in use.

Examples:
  # Last 50 lines
  plantview logs --tail 50

  # Follow in a scrollable viewer
  plantview logs -f`,
		Args: cobra.NoArgs,
		RunE: runLogs,
	}
	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().Int("tail", -1, "Number of lines to show from the end (default: all)")
	cmd.Flags().Bool("path", false, "Only print the log file path")
	return cmd
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cli.GetOptions(cmd))
	if err != nil {
		return err
	}
	var logCfg logging.Config
	if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid logging section")
	}

	path := findLogFile(logging.LogFilePath(component, logCfg))
	out := cmd.OutOrStdout()
	if only, _ := cmd.Flags().GetBool("path"); only {
		fmt.Fprintln(out, path)
		return nil
	}
	if path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no log directory; set logging.file.path")
	}

	follow, _ := cmd.Flags().GetBool("follow")
	if follow && tui.IsInteractive() {
		tui.InitializeTUI()
		_, err := tea.NewProgram(logviewer.NewApp(path), tea.WithAltScreen()).Run()
		return err
	}

	n, _ := cmd.Flags().GetInt("tail")
	lines, err := readTail(path, n)
	if err != nil && !(follow && os.IsNotExist(err)) {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("no log file yet at %s", path)).
				WithDetail("path", path)
		}
		return err
	}
	for _, l := range lines {
		fmt.Fprintln(out, logviewer.FormatLine(l))
	}
	if !follow {
		return nil
	}
	return followFile(cmd, path, out)
}

// findLogFile returns want if it exists, else the newest log of the same
// component in its directory, else want.
func findLogFile(want string) string {
	if want == "" {
		return ""
	}
	if _, err := os.Stat(want); err == nil {
		return want
	}
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(want), component+"-*.log"))
	if len(matches) == 0 {
		return want
	}
	// Dated names sort chronologically.
	sort.Strings(matches)
	return matches[len(matches)-1]
}

// readTail returns the last n lines of path, or all of them when n < 0.
func readTail(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
		if n >= 0 && len(lines) > n {
			lines = lines[1:]
		}
	}
	return lines, sc.Err()
}

// followFile prints lines appended to path until interrupted.
func followFile(cmd *cobra.Command, path string, out io.Writer) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:    stdlog.New(io.Discard, "", 0),
	})
	if err != nil {
		return err
	}
	defer t.Cleanup()
	defer t.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			fmt.Fprintln(out, logviewer.FormatLine(line.Text))
		}
	}
}
