package state

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/danodic-dev/mkdocs-backlinks/internal/build"
	"github.com/danodic-dev/mkdocs-backlinks/internal/config"
	"github.com/danodic-dev/mkdocs-backlinks/internal/constants"
	"github.com/danodic-dev/mkdocs-backlinks/internal/templater"
)

// State carries everything a command needs once the configuration is known.
type State struct {
	Config  *config.Config
	Logger  *log.Logger
	Builder *build.Builder
}

// Options are the global command line settings.
type Options struct {
	ConfigPath string
	Verbose    bool
	LogOutput  io.Writer
}

// Load reads the configuration and prepares the logger and builder. It
// replaces any previously loaded state.
func (s *State) Load(opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger, err := NewLogger(opts.LogOutput, cfg.LogLevel, opts.Verbose)
	if err != nil {
		return err
	}
	if cfg.Path() != "" {
		logger.Debug("loaded config", "path", cfg.Path())
	}

	t, err := templater.NewTemplater(cfg.ThemeDir)
	if err != nil {
		return fmt.Errorf("failed to create templater: %w", err)
	}

	*s = State{
		Config:  cfg,
		Logger:  logger,
		Builder: build.New(cfg, logger, t),
	}
	return nil
}

// NewLogger builds the command logger. verbose forces debug output.
func NewLogger(w io.Writer, level string, verbose bool) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	if verbose {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Prefix: constants.AppName,
		Level:  lvl,
	}), nil
}
