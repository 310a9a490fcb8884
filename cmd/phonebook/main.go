package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/smileynet/phonebook"
	"github.com/smileynet/phonebook/internal/code"
	"github.com/smileynet/phonebook/internal/config"
	"github.com/smileynet/phonebook/internal/console"
	"github.com/smileynet/phonebook/internal/directory"
	"github.com/smileynet/phonebook/internal/logging"
	"github.com/smileynet/phonebook/internal/seed"
	"github.com/smileynet/phonebook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// localSeedDir overrides embedded seed files when present.
const localSeedDir = ".phonebook/seeds"

// CLI is the top-level command structure for phonebook.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Start   StartCmd         `cmd:"" default:"withargs" help:"Open the interactive phonebook."`
	Code    CodeCmd          `cmd:"" help:"Print the contact code for a name and surnames."`
}

// StartCmd opens an interactive phonebook session.
type StartCmd struct {
	Plain bool   `help:"Force the line-based console even on a terminal." default:"false"`
	Seed  string `help:"Preload contacts from a YAML file." type:"path"`
	Demo  bool   `help:"Preload the bundled demo contacts." default:"false"`
}

// CodeCmd prints the code generated for a name and surnames.
type CodeCmd struct {
	Name     string   `arg:"" help:"Given name."`
	Surnames []string `arg:"" optional:"" help:"Family names."`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// setupError marks failures that happen before a session starts.
type setupError struct {
	err error
}

func (e *setupError) Error() string { return e.err.Error() }
func (e *setupError) Unwrap() error { return e.err }

func setupErr(format string, args ...any) error {
	return &setupError{err: fmt.Errorf(format, args...)}
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/phonebook/config.yaml"),
		".phonebook/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// Run executes the start command.
func (s *StartCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return setupErr("start: %w", err)
	}
	isTTY := isTerminal(os.Stdin) && isTerminal(os.Stdout)
	newProgram := func(m tea.Model) teaRunner {
		return tea.NewProgram(m, tea.WithAltScreen())
	}
	return s.run(os.Stdin, os.Stdout, os.Stderr, cfg, isTTY, newProgram)
}

// run builds the directory and session for cfg, enabling testable wiring.
func (s *StartCmd) run(in io.Reader, out, errOut io.Writer, cfg *config.Config, isTTY bool, newProgram func(tea.Model) teaRunner) error {
	// Apply CLI flag overrides.
	if s.Plain {
		cfg.UI.Mode = config.ModePlain
	}
	if s.Seed != "" {
		cfg.Seed.Path = s.Seed
	}
	if err := cfg.Validate(); err != nil {
		return setupErr("start: %w", err)
	}

	useTUI, err := chooseTUI(cfg.UI.Mode, isTTY)
	if err != nil {
		return setupErr("start: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return setupErr("start: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	dir := directory.New(directory.WithLogger(logger))
	if err := s.preload(errOut, dir, cfg.Seed.Path, logger); err != nil {
		return setupErr("start: %w", err)
	}

	if useTUI {
		_, err := newProgram(tui.NewModel(dir, tui.WithLogger(logger))).Run()
		return err
	}
	return console.New(dir, in, out, console.WithLogger(logger)).Run(context.Background())
}

// preload adds demo and seed-file contacts to dir. Duplicate codes are
// reported to w and skipped.
func (s *StartCmd) preload(w io.Writer, dir *directory.Directory, path string, logger *zap.Logger) error {
	var batches [][]seed.Entry
	if s.Demo {
		entries, err := seed.LoadFS(phonebook.OverlayFS(localSeedDir, phonebook.Seeds), phonebook.DemoSeed)
		if err != nil {
			return err
		}
		batches = append(batches, entries)
	}
	if path != "" {
		entries, err := seed.Load(path)
		if err != nil {
			return err
		}
		batches = append(batches, entries)
	}

	for _, entries := range batches {
		res := seed.Apply(dir, entries)
		for _, c := range res.Duplicates {
			_, _ = fmt.Fprintf(w, "warning: skipped seed contact with duplicate code %q\n", c)
		}
		logger.Info("seed applied", zap.Int("added", len(res.Added)), zap.Int("duplicates", len(res.Duplicates)))
	}
	return nil
}

// chooseTUI decides between the Bubble Tea interface and the console.
func chooseTUI(mode string, isTTY bool) (bool, error) {
	switch mode {
	case config.ModePlain:
		return false, nil
	case config.ModeTUI:
		if !isTTY {
			return false, errors.New("ui mode tui requires a terminal (TTY)")
		}
		return true, nil
	default:
		return isTTY, nil
	}
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run executes the code command.
func (c *CodeCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *CodeCmd) run(w io.Writer) error {
	_, err := fmt.Fprintln(w, code.Generate(c.Name, strings.Join(c.Surnames, " ")))
	return err
}

// Exit codes.
const (
	exitSuccess = 0
	exitRuntime = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *setupError
	if errors.As(err, &se) {
		return exitSetup
	}
	return exitRuntime
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("phonebook"),
		kong.Description("An interactive contact directory."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
