package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/lithammer/dedent"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"audiomark/internal/bootstrap"
	sessiondto "audiomark/internal/modules/session/dto"
	"audiomark/internal/platform/config"
	apperrors "audiomark/internal/platform/errors"
)

var version = "dev"

const (
	restoreFull     = "full"
	restoreMetadata = "metadata"
)

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	noticeColor = color.New(color.FgYellow)
	okColor     = color.New(color.FgGreen)
	titleColor  = color.New(color.FgCyan, color.Bold)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = errorColor.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	home   string
	notify bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "audiomark",
		Short: "Bookmark moments in audio recordings and share them as notes",
		Long: dedent.Dedent(`
			audiomark keeps one audio document open at a time, records bookmarks
			at playback positions and exports them as a note through the selected
			share target. Opening another document while bookmarks are unsaved
			asks whether to save them first, discard them or stay.`),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.home, "home", "", "state directory (default $XDG_CONFIG_HOME/audiomark)")
	root.PersistentFlags().BoolVar(&flags.notify, "notify", false, "send desktop notifications over D-Bus")

	root.AddCommand(
		newTUICmd(flags),
		newOpenCmd(flags),
		newMarkCmd(flags),
		newStatusCmd(flags),
		newPreviewCmd(flags),
		newExportCmd(flags),
		newDiscardCmd(flags),
		newTargetCmd(flags),
		newHistoryCmd(flags),
		newPluginCmd(flags),
		newMCPCmd(flags),
	)
	return root
}

func loadApp(flags *globalFlags) (*bootstrap.App, error) {
	home := flags.home
	if home == "" {
		var err error
		if home, err = config.DefaultHome(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, bootstrap.Options{Notify: flags.notify})
}

// withSession loads the app and restores the saved session before fn runs.
// Commands that hand in a new document restore metadata only, so the saved
// document is never loaded just to be replaced.
func withSession(flags *globalFlags, mode string, fn func(ctx context.Context, app *bootstrap.App) error) error {
	app, err := loadApp(flags)
	if err != nil {
		return err
	}
	defer app.Close()
	ctx := context.Background()
	restored, err := app.SessionCLI.Restore(ctx, mode)
	if err != nil {
		return err
	}
	if restored.Restored && restored.PlaybackUnavailable {
		_, _ = noticeColor.Fprintf(os.Stderr, "%s is unavailable; export or discard its bookmarks\n", restored.DisplayName)
	}
	return fn(ctx, app)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [ref]",
		Short: "Run the terminal player",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			return bootstrap.RunTUI(app, ref)
		},
	}
}

func newOpenCmd(flags *globalFlags) *cobra.Command {
	var onUnsaved string
	cmd := &cobra.Command{
		Use:   "open <ref>",
		Short: "Open an audio document",
		Example: dedent.Dedent(`
			audiomark open ~/Recordings/lecture-03.mp3
			audiomark open file:///srv/audio/standup.ogg --on-unsaved save-first`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, restoreMetadata, func(ctx context.Context, app *bootstrap.App) error {
				out, resolved, err := app.SessionCLI.Open(ctx, args[0], onUnsaved)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if resolved != nil {
					reportResolve(w, *resolved)
				}
				switch out.Outcome {
				case "pending":
					_, _ = noticeColor.Fprintf(w, "%s has unsaved bookmarks; rerun with --on-unsaved save-first|discard|cancel\n", out.DisplayName)
				case "unchanged":
					_, _ = fmt.Fprintf(w, "%s is already open\n", out.DisplayName)
				default:
					_, _ = okColor.Fprintf(w, "opened %s\n", out.DisplayName)
					if out.PlaybackUnavailable {
						_, _ = noticeColor.Fprintln(w, "playback unavailable for this document")
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&onUnsaved, "on-unsaved", "", "resolve a deferred switch: save-first|discard|cancel")
	return cmd
}

func reportResolve(w io.Writer, out sessiondto.ResolveOutput) {
	if out.Export != nil {
		_, _ = okColor.Fprintf(w, "exported %d bookmarks via %s\n", out.Export.Note.Count, out.Export.Target)
	}
	if out.ExportErr != nil {
		_, _ = noticeColor.Fprintf(w, "export failed, switched anyway: %v\n", out.ExportErr)
	}
}

func newMarkCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mark [ms|MM:SS|HH:MM:SS]",
		Short: "Record a bookmark at a position (default: the saved playhead)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at := ""
			if len(args) == 1 {
				at = args[0]
			}
			return withSession(flags, restoreFull, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Mark(ctx, at)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bookmark %d at %s (%d total)\n", out.Bookmark.Index+1, out.Bookmark.Time, out.Count)
				return nil
			})
		},
	}
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the open document and its bookmarks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(flags, restoreFull, func(ctx context.Context, app *bootstrap.App) error {
				st, err := app.SessionCLI.Status(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(st)
				}
				printStatus(w, st)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printStatus(w io.Writer, st sessiondto.StatusOutput) {
	if st.DocumentRef == "" {
		_, _ = fmt.Fprintln(w, "no document open")
		return
	}
	_, _ = titleColor.Fprintln(w, st.DisplayName)
	_, _ = fmt.Fprintf(w, "  ref:      %s\n", st.DocumentRef)
	_, _ = fmt.Fprintf(w, "  target:   %s\n", st.ShareTarget)
	_, _ = fmt.Fprintf(w, "  playback: %v\n", st.PlaybackAttached)
	if st.Unsaved {
		_, _ = noticeColor.Fprintln(w, "  unsaved bookmarks")
	}
	for _, b := range st.Bookmarks {
		mark := " "
		if b.Exported {
			mark = "✓"
		}
		_, _ = fmt.Fprintf(w, "  %3d. %s %s\n", b.Index+1, b.Time, mark)
	}
}

func newPreviewCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Print the note that export would share",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(flags, restoreFull, func(ctx context.Context, app *bootstrap.App) error {
				note, err := app.SessionCLI.Preview(ctx)
				if err != nil {
					return err
				}
				_, _ = titleColor.Fprintln(cmd.OutOrStdout(), note.Subject)
				_, _ = fmt.Fprint(cmd.OutOrStdout(), note.Body)
				return nil
			})
		},
	}
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Share the bookmarks as a note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(flags, restoreFull, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Export(ctx)
				if err != nil {
					if errors.Is(err, apperrors.ErrNoShareTargetAvailable) {
						_ = app.Notifier.Notify("Export failed", err.Error())
					}
					return err
				}
				_ = app.Notifier.Notify("Bookmarks exported", fmt.Sprintf("%s via %s", out.Note.Subject, out.Target))
				_, _ = okColor.Fprintf(cmd.OutOrStdout(), "exported %d bookmarks via %s (%s)\n", out.Note.Count, out.Target, out.Route)
				return nil
			})
		},
	}
}

func newDiscardCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "discard",
		Short: "Forget the open document and its bookmarks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(flags, restoreFull, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SessionCLI.Discard(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session discarded")
				return nil
			})
		},
	}
}

func newTargetCmd(flags *globalFlags) *cobra.Command {
	target := &cobra.Command{Use: "target", Short: "Share target selection"}

	target.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List share targets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			selected, err := app.SessionCLI.ShareTarget(ctx)
			if err != nil {
				return err
			}
			infos, err := app.ShareCLI.ListTargets(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, info := range infos {
				marker := " "
				if info.Name == selected {
					marker = "*"
				}
				state := okColor.Sprint("available")
				if !info.Available {
					state = noticeColor.Sprint("unavailable")
				}
				line := fmt.Sprintf("%s %-20s %-8s %s", marker, info.Name, info.Kind, state)
				if info.Detail != "" {
					line += "  " + info.Detail
				}
				_, _ = fmt.Fprintln(w, line)
			}
			return nil
		},
	})

	target.AddCommand(&cobra.Command{
		Use:   "set <name>",
		Short: "Select the preferred share target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			name := strings.TrimSpace(args[0])
			infos, err := app.ShareCLI.ListTargets(ctx)
			if err != nil {
				return err
			}
			known := false
			for _, info := range infos {
				known = known || info.Name == name
			}
			if !known {
				_, _ = noticeColor.Fprintf(cmd.ErrOrStderr(), "%s is not a known target; exports will fall back to the chooser\n", name)
			}
			if err := app.SessionCLI.SetShareTarget(ctx, name); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "share target: %s\n", name)
			return nil
		},
	})

	target.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the selected share target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			name, err := app.SessionCLI.ShareTarget(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	})
	return target
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent exports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			entries, err := app.ShareCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(w, "no exports")
				return nil
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(w, "%s  %-24s %3d  %s/%s\n", e.ExportedAt.Local().Format("2006-01-02 15:04"), e.Subject, e.Count, e.Route, e.Target)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries")
	return cmd
}

func newPluginCmd(flags *globalFlags) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Share-target plugin commands"}
	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check plugin manifests, checksums and handshakes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			results, err := app.ShareCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(results) == 0 {
				_, _ = fmt.Fprintln(w, "no plugins declared")
				return nil
			}
			for _, r := range results {
				if r.Error != "" {
					_, _ = errorColor.Fprintf(w, "%s: %s\n", r.Name, r.Error)
					continue
				}
				_, _ = okColor.Fprintf(w, "%s: binary=%v checksum=%v lifecycle=%v\n", r.Name, r.BinaryReachable, r.ChecksumValid, r.LifecycleOK)
			}
			return nil
		},
	})
	return plugin
}

func newMCPCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the session over the Model Context Protocol on stdio",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withSession(flags, restoreFull, func(_ context.Context, app *bootstrap.App) error {
				return server.ServeStdio(app.SessionMCP.Server(version))
			})
		},
	}
}
