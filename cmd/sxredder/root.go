package main

import (
	"io"
	"os"
	"path/filepath"

	"sxredder/internal/browser"
	"sxredder/internal/config"
	serr "sxredder/internal/errors"
	"sxredder/internal/log"
	"sxredder/internal/shred"
	"sxredder/internal/tui"
	"sxredder/internal/tui/styles"
	"sxredder/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose    bool
	debug      bool
	configFile string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "sxredder [directory]",
		Short: "Browse a directory and shred files",
		Long: `sxredder is a two-pane terminal file browser. Move through directories,
preview files, and shred the selected file: it is overwritten with 'x' bytes,
then with zero bytes, and then removed. Every shred asks for confirmation.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			closeLog := setupLogging(opts.verbose, opts.debug)
			defer closeLog()

			app, err := newApp(dir, opts)
			if err != nil {
				log.LogError(err, "startup failed")
				return err
			}
			defer app.Close()

			p := tea.NewProgram(app.model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				log.LogError(err, "terminal ui failed")
				return serr.Wrap(err, "error running terminal ui")
			}
			log.Info("session ended")
			return nil
		},
	}

	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log informational messages, not only warnings and errors")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "log debug messages")
	rootCmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default is $HOME/.config/sxredder/config.yaml)")

	return rootCmd
}

// logPath returns the log file under the user cache directory
func logPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sxredder", "sxredder.log"), nil
}

// setupLogging sends the process-wide log to a file; the terminal belongs to
// the UI. If the file can't be opened logging is discarded.
func setupLogging(verbose, debug bool) func() {
	opts := []log.Option{log.WithOutput(io.Discard), log.WithVerbose(verbose)}
	path, err := logPath()
	if err == nil {
		opts = append(opts, log.WithFile(path))
	}
	log.Configure(opts...)
	log.SetDebug(debug)
	log.Debugf("logging to %s", path)
	return func() { _ = log.Close() }
}

// app holds everything a session needs
type app struct {
	cfg     *config.Config
	session *browser.Session
	model   *tui.Model
	watcher *watch.Watcher
}

func loadConfig(path string) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadConfigFile(path)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		log.LogWithError(err).Warn("using default settings")
		return config.New()
	}
	log.Debug("configuration loaded")
	return cfg
}

func newApp(dir string, opts *rootOptions) (*app, error) {
	logger := log.Default()
	cfg := loadConfig(opts.configFile)

	ignore, err := cfg.IgnoreMatchers()
	if err != nil {
		return nil, err
	}
	styles.Apply(cfg.Theme.Name)

	lister := browser.NewLister(browser.WithIgnore(ignore...), browser.WithListerLogger(logger))
	nav, err := browser.NewNavigator(lister, dir)
	if err != nil {
		return nil, err
	}
	previewer := browser.NewPreviewer(lister, cfg.Preview.MaxLines, logger)
	engine := shred.New(shred.WithLogger(logger))
	session := browser.NewSession(nav, previewer, engine, logger)

	a := &app{cfg: cfg, session: session}

	modelOpts := []tui.Option{tui.WithShowSizes(cfg.Browser.ShowSizes), tui.WithLogger(logger)}
	if cfg.Watch.AutoRefresh {
		w, err := watch.New(logger)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			log.LogWithError(err).Warn("auto refresh disabled")
		} else {
			a.watcher = w
			modelOpts = append(modelOpts, tui.WithWatcher(w))
		}
	}
	a.model = tui.New(session, modelOpts...)

	logger.With(log.F("dir", nav.Dir()), log.F("preview_lines", previewer.MaxLines())).Info("session started")
	return a, nil
}

// Close releases the watcher
func (a *app) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
}
