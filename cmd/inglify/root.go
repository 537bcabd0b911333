package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/inglify/inglify"
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "inglify",
		Short: "Translate Indonesian into six tones of another language",
		Long: `inglify translates Indonesian text into a target language in six tones:
formal, casual, friendly, professional, simple and persuasive.

Commands:
  translate   Translate text once and print every tone
  session     Interactive session with playback, copy and history
  serve       Run the HTTP translation gateway
  history     List, delete, export and import past translations
  languages   List supported target languages
  tones       List the translation tones`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configName, "config", "", "Config name (default: $CONFIG_NAME or \"default\")")
	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "configs", "Directory holding <config>.yaml")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log to stderr")

	root.AddCommand(
		newTranslateCmd(a),
		newSessionCmd(a),
		newServeCmd(a),
		newHistoryCmd(a),
		newLanguagesCmd(a),
		newTonesCmd(a),
		newVersionCmd(a),
	)
	return root
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "%s %s\n", inglify.Name, inglify.FullVersion())
			if inglify.GitCommit != "unknown" && inglify.GitCommit != "" {
				fmt.Fprintf(a.stdout, "  commit:  %s\n", inglify.GitCommit)
			}
			if inglify.BuildDate != "unknown" && inglify.BuildDate != "" {
				fmt.Fprintf(a.stdout, "  built:   %s\n", inglify.BuildDate)
			}
		},
	}
}

func newLanguagesCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported target languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return writeJSON(a.stdout, inglify.LanguageEntries())
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			for _, l := range inglify.LanguageEntries() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.Code, l.Label, l.Name, l.Direction)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newTonesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tones",
		Short: "List the translation tones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			for _, t := range inglify.TranslationTones {
				fmt.Fprintf(tw, "%s\t%s\n", t.Label, t.Description)
			}
			return tw.Flush()
		},
	}
}

func newTranslateCmd(a *app) *cobra.Command {
	var (
		lang        string
		asJSON      bool
		noHistory   bool
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text once and print every tone",
		Long: `Translate Indonesian text into all six tones. The text is read from the
arguments, or from stdin when no arguments are given. Several target
languages may be given at once, e.g. --lang ja,fr,de.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}

			text := strings.Join(args, " ")
			if text == "" {
				data, err := io.ReadAll(a.stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = strings.TrimSpace(string(data))
			}

			t, err := a.translator()
			if err != nil {
				return err
			}

			languages := strings.Split(lang, ",")
			for i := range languages {
				languages[i] = strings.TrimSpace(languages[i])
			}
			results := inglify.TranslateLanguages(cmd.Context(), t, text, languages, concurrency)

			var responses []*inglify.TranslationResponse
			var firstErr error
			for _, r := range results {
				if r.Err != nil {
					if len(results) == 1 {
						return r.Err
					}
					fmt.Fprintf(a.stderr, "! %s: %s\n", r.TargetLanguage, inglify.PublicMessage(r.Err, inglify.MsgInternal))
					if firstErr == nil {
						firstErr = r.Err
					}
					continue
				}
				responses = append(responses, r.Response)
			}

			if !noHistory && len(responses) > 0 {
				h, err := a.history()
				if err != nil {
					return err
				}
				for _, resp := range responses {
					if _, err := h.Append(*resp); err != nil {
						fmt.Fprintf(a.stderr, "warning: history not saved: %v\n", err)
					}
				}
			}

			for i, resp := range responses {
				if asJSON {
					if err := writeJSON(a.stdout, resp); err != nil {
						return err
					}
					continue
				}
				if i > 0 {
					fmt.Fprintln(a.stdout)
				}
				if err := printResponse(a.stdout, *resp); err != nil {
					return err
				}
			}
			return firstErr
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", inglify.DefaultLanguage, "Target language codes, comma separated (see 'inglify languages')")
	cmd.Flags().IntVar(&concurrency, "concurrency", 3, "Languages translated at once")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the response as JSON")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not save the result to history")
	return cmd
}

// printResponse renders one result per catalog tone.
func printResponse(w io.Writer, resp inglify.TranslationResponse) error {
	fmt.Fprintf(w, "Bahasa %snya %q\n\n", inglify.LanguageLabel(resp.TargetLanguage), resp.OriginalText)

	byTone := resp.ByTone()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, t := range inglify.TranslationTones {
		fmt.Fprintf(tw, "%s\t%s\n", t.Label, byTone[t.Name])
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
