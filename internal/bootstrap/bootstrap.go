package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	playbackinadapter "audiomark/internal/modules/playback/adapter/in"
	playbackoutadapter "audiomark/internal/modules/playback/adapter/out"
	playbackin "audiomark/internal/modules/playback/port/in"
	playbackservice "audiomark/internal/modules/playback/service"
	playbackusecase "audiomark/internal/modules/playback/usecase"
	sessioninadapter "audiomark/internal/modules/session/adapter/in"
	sessionoutadapter "audiomark/internal/modules/session/adapter/out"
	"audiomark/internal/modules/session/domain"
	sessionservice "audiomark/internal/modules/session/service"
	sessionusecase "audiomark/internal/modules/session/usecase"
	shareinadapter "audiomark/internal/modules/share/adapter/in"
	shareoutadapter "audiomark/internal/modules/share/adapter/out"
	shareout "audiomark/internal/modules/share/port/out"
	shareservice "audiomark/internal/modules/share/service"
	shareusecase "audiomark/internal/modules/share/usecase"
	"audiomark/internal/platform/clock"
	"audiomark/internal/platform/config"
	"audiomark/internal/platform/id"
	"audiomark/internal/platform/logging"
	"audiomark/internal/platform/notify"
	uiapp "audiomark/internal/ui/app"
)

type Options struct {
	Notify bool
	// LogWriter replaces the log file, mainly for tests.
	LogWriter io.Writer
}

type App struct {
	Config      config.Config
	Logger      hclog.Logger
	Notifier    notify.Notifier
	SessionCLI  sessioninadapter.CLIHandler
	SessionTUI  sessioninadapter.TUIHandler
	SessionMCP  sessioninadapter.MCPHandler
	PlaybackTUI playbackinadapter.TUIHandler
	ShareCLI    shareinadapter.CLIHandler

	playback playbackin.Usecase
	closers  []io.Closer
}

func New(cfg config.Config, opts Options) (*App, error) {
	app := &App{Config: cfg}
	if opts.LogWriter != nil {
		app.Logger = logging.New(opts.LogWriter, cfg.LogLevel)
	} else {
		logger, closer, err := logging.Open(cfg.LogPath, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		app.Logger = logger
		app.closers = append(app.closers, closer)
	}
	app.Notifier = notify.New(opts.Notify, app.Logger)

	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	prefs, err := sessionoutadapter.NewSQLitePreferences(cfg.DBPath)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("new preferences store: %w", err)
	}
	app.closers = append(app.closers, prefs)

	exportLog, err := shareoutadapter.NewSQLiteExportLog(cfg.DBPath)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("new export log: %w", err)
	}
	if c, ok := exportLog.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}

	manifests, err := shareoutadapter.NewFileManifestStore(cfg.PluginsDir)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("new manifest store: %w", err)
	}

	targets := []shareout.Target{
		shareoutadapter.NewNotesTarget(cfg.NotesDir, clk),
		shareoutadapter.NewMailTarget(shareoutadapter.MailSettings{
			Host:     cfg.Share.Mail.Host,
			Port:     cfg.Share.Mail.Port,
			Username: cfg.Share.Mail.Username,
			Password: cfg.Share.Mail.Password,
			From:     cfg.Share.Mail.From,
			To:       cfg.Share.Mail.To,
		}),
	}
	shareUC := shareusecase.NewInteractor(shareservice.NewShareService(
		targets,
		shareoutadapter.NewTempFileChooser(os.TempDir(), shareoutadapter.NewDesktopLauncher()),
		manifests,
		shareoutadapter.NewGRPCHost(cfg.CallTimeout(), app.Logger),
		exportLog,
		clk,
		ids,
		app.Logger,
	))

	app.playback = playbackusecase.NewInteractor(playbackservice.NewPlaybackService(
		clk,
		playbackoutadapter.NewLocalSourceLocator(),
		playbackoutadapter.NewFFProbeProber(cfg.Playback.ProbeCommand),
		playbackoutadapter.NewExecAudioOutput(cfg.Playback.PlayerCommand),
		cfg.Playback.Speeds,
		app.Logger,
	))

	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		prefs,
		sessionoutadapter.NewURIDocumentResolver(),
		sessionoutadapter.NewFileAccessGranter(),
		sessionoutadapter.NewPlaybackAdapter(app.playback),
		sessionoutadapter.NewShareAdapter(shareUC),
		sessionoutadapter.NewFSDocumentWatcher(app.Logger),
		sessionservice.Options{
			Policy: domain.Policy{
				SortOnInsert:  cfg.Session.SortOnInsert,
				BlockReexport: cfg.Session.BlockReexport,
			},
			Label:           cfg.Session.Label,
			FallbackSubject: cfg.Session.FallbackSubject,
			DefaultTarget:   cfg.Share.DefaultTarget,
			Logger:          app.Logger,
		},
	))

	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.SessionTUI = sessioninadapter.NewTUIHandler(sessionUC)
	app.SessionMCP = sessioninadapter.NewMCPHandler(sessionUC)
	app.PlaybackTUI = playbackinadapter.NewTUIHandler(app.playback)
	app.ShareCLI = shareinadapter.NewCLIHandler(shareUC)
	return app, nil
}

// Close stops any audible output and releases the stores.
func (a *App) Close() error {
	var errs []error
	if a.playback != nil {
		if err := a.playback.Unload(context.Background()); err != nil {
			errs = append(errs, err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App, initialRef string) error {
	model := uiapp.NewModel(app.SessionTUI, app.PlaybackTUI, app.ShareCLI, uiapp.Options{
		InitialRef:   initialRef,
		PollInterval: app.Config.PollInterval(),
		SeekStepMs:   app.Config.Playback.SeekStepMS,
		Notifier:     app.Notifier,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
