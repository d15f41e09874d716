package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/graphstat/internal/config"
	"github.com/papapumpkin/graphstat/internal/telemetry"
	"github.com/papapumpkin/graphstat/internal/watch"
)

var errNoTelemetryFile = errors.New("no telemetry file: pass one or set telemetry_file")

var telemetryCmd = &cobra.Command{
	Use:   "telemetry [events.jsonl]",
	Short: "View JSONL telemetry events recorded by earlier runs",
	Long: `Reads and formats a JSONL telemetry file. Without an argument, the
configured telemetry_file is used.
With --follow (-f), watches the file for new events (like tail -f).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTelemetry,
}

func init() {
	telemetryCmd.Flags().BoolP("follow", "f", false, "follow the file for new events")
	rootCmd.AddCommand(telemetryCmd)
}

func runTelemetry(cmd *cobra.Command, args []string) error {
	follow, _ := cmd.Flags().GetBool("follow")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	path := cfg.TelemetryFile
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errNoTelemetryFile
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	defer f.Close()

	out := cmd.OutOrStdout()
	events := newEventReader(f)
	if err := events.printAvailable(out); err != nil {
		return fmt.Errorf("telemetry: read %s: %w", path, err)
	}
	if !follow {
		events.flush(out)
		return nil
	}

	ctx, cancel := setupSignalContext(cmd.Context())
	defer cancel()

	w, err := watch.NewWatcher(path, cfg.WatchDebounce)
	if err != nil {
		return fmt.Errorf("telemetry: create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("telemetry: watch %s: %w", path, err)
	}
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok || change.Kind == watch.ChangeRemoved {
				return nil
			}
			if err := events.printAvailable(out); err != nil {
				return fmt.Errorf("telemetry: read %s: %w", path, err)
			}
		}
	}
}

// eventReader reads JSONL events from a file that may still be growing.
// Text after the last newline is held back until its line is complete.
type eventReader struct {
	r       *bufio.Reader
	partial strings.Builder
}

func newEventReader(r io.Reader) *eventReader {
	return &eventReader{r: bufio.NewReader(r)}
}

// printAvailable prints every complete line read so far.
func (e *eventReader) printAvailable(w io.Writer) error {
	for {
		chunk, err := e.r.ReadString('\n')
		if errors.Is(err, io.EOF) {
			e.partial.WriteString(chunk)
			return nil
		}
		if err != nil {
			return err
		}
		line := e.partial.String() + chunk
		e.partial.Reset()
		if line = strings.TrimSpace(line); line != "" {
			printEvent(w, line)
		}
	}
}

// flush prints a held-back final line that has no trailing newline.
func (e *eventReader) flush(w io.Writer) {
	if line := strings.TrimSpace(e.partial.String()); line != "" {
		printEvent(w, line)
	}
	e.partial.Reset()
}

// printEvent decodes a JSONL line and prints a human-readable representation.
func printEvent(w io.Writer, line string) {
	var evt telemetry.Event
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		fmt.Fprintf(w, "??? %s\n", line)
		return
	}

	parts := []string{fmt.Sprintf("[%s]", evt.Timestamp.Format(time.TimeOnly)), evt.Kind}
	if evt.Source != "" {
		parts = append(parts, "source="+evt.Source)
	}
	if evt.Pass != "" {
		parts = append(parts, "pass="+evt.Pass)
	}
	if evt.Data != nil {
		if m, ok := evt.Data.(map[string]any); ok {
			parts = append(parts, formatDataMap(m))
		} else {
			data, _ := json.Marshal(evt.Data)
			parts = append(parts, string(data))
		}
	}

	fmt.Fprintln(w, strings.Join(parts, " "))
}

// formatDataMap formats a data map as key=value pairs sorted by key.
func formatDataMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, m[k])
	}
	return b.String()
}
