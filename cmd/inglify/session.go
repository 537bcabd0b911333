package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/inglify/inglify"
	"github.com/inglify/inglify/device"
	"github.com/inglify/inglify/history"
	"github.com/inglify/inglify/session"
	"github.com/spf13/cobra"
)

const sessionHelp = `Type Indonesian text and press enter to translate it.
Commands:
  :lang <code>       change the target language
  :play <tone>       play or stop a tone (formal, casual, ...)
  :stop              stop playback
  :copy <tone>       copy a tone to the clipboard
  :history           list history
  :restore <n|id>    show a history entry again
  :delete <n|id>     delete a history entry
  :clear-history     delete every history entry
  :reset             clear the input and the results
  :help              show this help
  :quit              leave the session`

// terminalSurface renders the session on a terminal.
type terminalSurface struct {
	out     io.Writer
	errOut  io.Writer
	display *session.Display
}

func (s *terminalSurface) Alert(message string) {
	fmt.Fprintf(s.errOut, "! %s\n", message)
}

func (s *terminalSurface) SetTitle(title string) {
	fmt.Fprintf(s.errOut, "-- %s\n", title)
}

func (s *terminalSurface) ScrollToResults() {
	if s.display == nil {
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, r := range s.display.Results() {
		tone, _ := inglify.LookupTone(r.Tone)
		fmt.Fprintf(tw, "%s\t%s\n", tone.Label, r.Translation)
	}
	_ = tw.Flush()
}

func newSessionCmd(a *app) *cobra.Command {
	var (
		lang      string
		noDevices bool
	)
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Interactive session with playback, copy and history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			t, err := a.translator()
			if err != nil {
				return err
			}
			h, err := a.history()
			if err != nil {
				return err
			}

			var caps session.Capabilities
			if !noDevices {
				caps = device.Detect()
			}

			surface := &terminalSurface{out: a.stdout, errOut: a.stderr}
			c := session.New(t,
				session.WithHistory(h),
				session.WithSurface(surface),
				session.WithCapabilities(caps),
				session.WithLogger(a.logger),
				session.WithTargetLanguage(lang),
			)
			surface.display = c.Display()

			r := &repl{app: a, coord: c, history: h}
			return r.run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", inglify.DefaultLanguage, "Initial target language code")
	cmd.Flags().BoolVar(&noDevices, "no-devices", false, "Disable speech playback and clipboard")
	return cmd
}

type repl struct {
	app     *app
	coord   *session.Coordinator
	history *history.Store
}

func (r *repl) run(ctx context.Context) error {
	defer r.coord.StopSpeaking()

	fmt.Fprintf(r.app.stderr, "inglify %s, target %s. Type :help for commands.\n",
		inglify.FullVersion(), inglify.LanguageLabel(r.coord.TargetLanguage()))

	scanner := bufio.NewScanner(r.app.stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			r.coord.SetText(line)
			// Failures are alerted by the coordinator.
			_, _ = r.coord.Submit(ctx)
			continue
		}

		quit, err := r.command(ctx, line)
		if err != nil {
			fmt.Fprintf(r.app.stderr, "! %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

func (r *repl) command(ctx context.Context, line string) (quit bool, err error) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "quit", "q", "exit":
		return true, nil
	case "help", "h":
		fmt.Fprintln(r.app.stdout, sessionHelp)
	case "lang":
		if !inglify.IsSupported(arg) {
			return false, fmt.Errorf("unknown language %q", arg)
		}
		r.coord.SetTargetLanguage(arg)
	case "reset":
		r.coord.Reset()
	case "play":
		tone, err := parseTone(arg)
		if err != nil {
			return false, err
		}
		// Unavailable playback is alerted by the coordinator.
		_ = r.coord.Speak(tone)
	case "stop":
		r.coord.StopSpeaking()
	case "copy":
		tone, err := parseTone(arg)
		if err != nil {
			return false, err
		}
		if r.coord.Copy(ctx, tone) == nil {
			fmt.Fprintf(r.app.stderr, "Copied %s\n", tone)
		}
	case "history":
		items, err := r.history.Items()
		if err != nil {
			return false, err
		}
		if len(items) == 0 {
			fmt.Fprintln(r.app.stdout, "No history yet.")
			break
		}
		printHistory(r.app, items)
	case "restore":
		item, err := r.lookup(arg)
		if err != nil {
			return false, err
		}
		return false, r.coord.Restore(item)
	case "delete":
		item, err := r.lookup(arg)
		if err != nil {
			return false, err
		}
		if _, err := r.history.Delete(item.ID); err != nil {
			return false, err
		}
	case "clear-history":
		return false, r.history.Clear()
	default:
		return false, fmt.Errorf("unknown command :%s (try :help)", name)
	}
	return false, nil
}

// lookup resolves a 1-based list position or an id.
func (r *repl) lookup(ref string) (inglify.HistoryItem, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		items, err := r.history.Items()
		if err != nil {
			return inglify.HistoryItem{}, err
		}
		if n < 1 || n > len(items) {
			return inglify.HistoryItem{}, fmt.Errorf("no history entry %d", n)
		}
		return items[n-1], nil
	}

	item, ok, err := r.history.Get(ref)
	if err != nil {
		return inglify.HistoryItem{}, err
	}
	if !ok {
		return inglify.HistoryItem{}, fmt.Errorf("no history entry %q", ref)
	}
	return item, nil
}

func parseTone(arg string) (string, error) {
	tone, ok := inglify.LookupTone(strings.ToLower(arg))
	if !ok {
		return "", fmt.Errorf("unknown tone %q, want one of %s", arg, strings.Join(inglify.ToneNames(), ", "))
	}
	return tone.Name, nil
}
