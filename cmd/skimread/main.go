// Package main is the entry point for the skimread terminal reader.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/skimread/internal/app"
	"github.com/dshills/skimread/internal/config"
	"github.com/dshills/skimread/internal/document"
	"github.com/dshills/skimread/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	file       string
	configPath string
	logFile    string
	logLevel   string
	noWatch    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger, closer, err := app.OpenLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()
	logger.Info("skimread %s starting", version)

	doc, err := loadDocument(opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	appOpts := app.Options{
		Document: doc,
		Config:   cfg,
		Logger:   logger,
	}
	if !opts.noWatch && opts.configPath != "" {
		reloader, err := config.NewReloader(opts.configPath)
		if err != nil {
			// Reading works without live reload.
			logger.WithComponent("config").Warn("live reload disabled: %v", err)
		} else {
			reloader.Start()
			defer reloader.Close()
			appOpts.Reload = reloader
		}
	}

	application, err := app.New(appOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		logger.Error("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// loadDocument reads path, or standard input for "-".
func loadDocument(path string) (*document.Document, error) {
	if path == "-" {
		doc, err := document.Read(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading standard input: %w", err)
		}
		doc.Path = "-"
		return doc, nil
	}
	return document.Load(path)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to configuration file (TOML or YAML)")
	flag.StringVar(&opts.configPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logFile, "log", "", "Write logs to this file")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.noWatch, "no-watch", false, "Do not reload the configuration file when it changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "skimread - terminal speed reader\n\n")
		fmt.Fprintf(os.Stderr, "Usage: skimread [options] FILE\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys (defaults):\n")
		fmt.Fprintf(os.Stderr, "  a, space, pgdn   next page\n")
		fmt.Fprintf(os.Stderr, "  q, pgup          previous page\n")
		fmt.Fprintf(os.Stderr, "  /                search, then n / p for next / previous match\n")
		fmt.Fprintf(os.Stderr, "  b                toggle bold word lead-ins\n")
		fmt.Fprintf(os.Stderr, "  esc              leave search, or quit\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  skimread book.txt\n")
		fmt.Fprintf(os.Stderr, "  man ls | col -b | skimread -\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("skimread %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.file = flag.Arg(0)

	return opts
}
