package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/marcin-skalski/jiraclui/internal/config"
	"github.com/marcin-skalski/jiraclui/internal/jira"
	"github.com/marcin-skalski/jiraclui/internal/logging"
	"github.com/marcin-skalski/jiraclui/internal/session"
	"github.com/marcin-skalski/jiraclui/internal/tui"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

type options struct {
	configPath string
	generate   bool
	issue      string
	update     string
	create     bool
	today      bool
	verbose    int
	noTUI      bool
	version    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := pflag.NewFlagSet("jiraclui", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&o.configPath, "config", "c", "", "path to config file")
	fs.BoolVar(&o.generate, "generate-config", false, "write a sample config to --config (default config.yaml) and exit")
	fs.StringVarP(&o.issue, "issue", "i", "", "show ticket `ID` and exit")
	fs.StringVarP(&o.update, "update", "u", "", "update the status of ticket `ID` and exit")
	fs.BoolVarP(&o.create, "create", "n", false, "create a ticket and exit")
	fs.BoolVarP(&o.today, "today", "t", false, "list tickets opened or updated today and exit")
	fs.CountVarP(&o.verbose, "verbose", "v", "log more (-v info, -vv debug)")
	fs.BoolVar(&o.noTUI, "no-tui", false, "use the line-based interface")
	fs.BoolVar(&o.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	return o, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if opts.version {
		fmt.Fprintf(stdout, "jiraclui %s\n", version)
		return 0
	}

	if opts.generate {
		path := opts.configPath
		if path == "" {
			path = "config.yaml"
		}
		if err := config.GenerateSample(path); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Sample config written to %s. Please customize it with your settings.\n", path)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if config.IsConfigurationError(err) {
		fmt.Fprintf(stderr, "error: %v\n", err)
		fmt.Fprintln(stderr, "Pass a config file with -c, or create one with --generate-config.")
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	direct := opts.issue != "" || opts.update != "" || opts.today || opts.create
	tuiEnabled := cfg.TUI.Enabled == nil || *cfg.TUI.Enabled

	// Auto-detect TUI capability
	enableTUI := !direct && !opts.noTUI && tuiEnabled && os.Getenv("JIRACLUI_TUI") != "0" &&
		isTerminal(stdin) && isTerminal(stdout)

	logger, closer, err := logging.SetupLogger(logging.Options{
		File:      cfg.LogFile,
		Level:     cfg.Log.Level,
		Verbosity: opts.verbose,
		Console:   !enableTUI,
		Stderr:    stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "setup logger: %v\n", err)
		return 1
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := jira.NewClient(jira.Options{
		BaseURL:    cfg.APIURL,
		Token:      cfg.APIToken,
		MaxResults: cfg.AppOptions.MaxTableEntry,
		Timeout:    cfg.HTTPTimeout,
	}, logger)

	theme := tui.NewTheme(cfg.AppOptions.AppColors)
	scfg := session.Config{
		Scope: session.Scope{
			Projects: cfg.ProjectNames,
			Users:    cfg.Users,
		},
		NumericMenu: cfg.AppOptions.NumberTypeMenu,
	}

	if enableTUI {
		logger.Info("jiraclui starting", "config", opts.configPath, "mode", "tui")
		canvas := tui.NewCanvas(theme)
		sess := session.New(scfg, client, canvas, logger)
		if err := tui.Run(ctx, sess, canvas, theme, sess.Start); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			fmt.Fprintf(stderr, "TUI error: %v\n", err)
			return 1
		}
		return 0
	}

	logger.Info("jiraclui starting", "config", opts.configPath, "mode", "lines", "direct", direct)
	printer := tui.NewPrinter(stdout, theme, !direct && isTerminal(stdout))
	sess := session.New(scfg, client, printer, logger)

	var step session.Step
	switch {
	case opts.issue != "":
		step = sess.StartLookup(ctx, opts.issue)
	case opts.update != "":
		step = sess.StartUpdate(ctx, opts.update)
	case opts.today:
		step = sess.StartToday(ctx)
	case opts.create:
		step = sess.StartCreate()
	default:
		step = sess.Start(ctx)
	}

	if err := tui.RunLines(ctx, sess, step, stdin, stdout); err != nil && ctx.Err() == nil {
		logger.Error("read input", "err", err)
		return 1
	}
	return 0
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
