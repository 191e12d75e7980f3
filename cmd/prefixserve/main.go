// Copyright 2026 The PrefixServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the prefixserve word suggestion server and CLI.

PrefixServe answers "all words beginning with P" queries against a static
dictionary of several hundred thousand entries. The index is an arena-backed
trie built once at startup; lookups cost time proportional to the prefix
length plus the number of results, never to dictionary size. Each client is
throttled by a fixed-window request counter before its query reaches the
index.

# Usage

Serve HTTP with default settings:

	prefixserve -dict data/words.txt

Use a custom bind address and enable debug logging:

	prefixserve -dict data/words.txt -addr :9000 -d

Run in CLI mode for interactive testing:

	prefixserve -dict data/words.txt -c -limit 10

Run the msgpack IPC mode for editor integration:

	prefixserve -dict data/words.txt -ipc

The dictionary file is a newline-delimited word list. Lines are trimmed, a
single trailing comma or period is stripped, and empty lines are discarded.

# Configuration

Runtime configuration is a TOML file, created with defaults when missing:

	[server]
	addr = ":8470"
	min_query = 2
	max_query = 60
	default_limit = 100
	max_limit = 100

	[limiter]
	window_ms = 60000
	max_requests = 100

	[dict]
	path = "data/words.txt"

# Throttling

The limiter counts requests per client key in fixed windows. Clients are
keyed on the first X-Forwarded-For entry when present, otherwise on the peer
address. A client over its allowance gets 429 until its window rolls over.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/prefixserve/prefixserve/internal/cli"
	"github.com/prefixserve/prefixserve/pkg/config"
	"github.com/prefixserve/prefixserve/pkg/dictionary"
	"github.com/prefixserve/prefixserve/pkg/index"
	"github.com/prefixserve/prefixserve/pkg/ratelimit"
	"github.com/prefixserve/prefixserve/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "prefixserve"
	gh      = "https://github.com/prefixserve/prefixserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary, index, and limiter together and hands off
// to the selected serving mode. It holds no logic of its own.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "prefixserve.toml", "Path to the TOML config file")
	dictPath := flag.String("dict", defaults.Dict.Path, "Path to the newline-delimited word list")
	addr := flag.String("addr", defaults.Server.Addr, "HTTP listen address")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	ipcMode := flag.Bool("ipc", false, "Run msgpack IPC over stdin/stdout instead of HTTP")
	limit := flag.Int("limit", defaults.Server.DefaultLimit, "Number of suggestions to return")
	minQuery := flag.Int("qmin", defaults.Server.MinQuery, "Minimum query length for suggestions")
	maxQuery := flag.Int("qmax", defaults.Server.MaxQuery, "Maximum query length for suggestions")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering (DBG only) - passes raw prefixes through")
	windowMs := flag.Int("window", defaults.Limiter.WindowMs, "Throttling window length in milliseconds")
	maxRequests := flag.Int("max-requests", defaults.Limiter.MaxRequests, "Admissions allowed per client per window")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(appConfig, addr, dictPath, limit, minQuery, maxQuery, windowMs, maxRequests)

	ix := index.New()
	count, err := dictionary.LoadFile(appConfig.Dict.Path, ix)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debugf("index ready: %d entries, %d distinct words, %d nodes", count, ix.Size(), ix.NodeCount())

	limiter := ratelimit.New(appConfig.Limiter.Window(), appConfig.Limiter.MaxRequests)

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(ix, appConfig.Server.MinQuery, appConfig.Server.MaxQuery, appConfig.Server.DefaultLimit, *noFilter)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if *ipcMode {
		srv := server.NewIPCServer(ix, limiter, appConfig.Server)
		if err := srv.Start(); err != nil {
			log.Fatalf("IPC error: %v", err)
		}
		return
	}

	showStartupInfo(appConfig.Server.Addr, ix.Size())
	srv := server.NewHTTPServer(ix, limiter, appConfig.Server)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// applyFlags overrides loaded config values with any flags the user set.
func applyFlags(cfg *config.Config, addr, dictPath *string, limit, minQuery, maxQuery, windowMs, maxRequests *int) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["addr"] {
		cfg.Server.Addr = *addr
	}
	if set["dict"] {
		cfg.Dict.Path = *dictPath
	}
	if set["limit"] {
		cfg.Server.DefaultLimit = *limit
	}
	if set["qmin"] {
		cfg.Server.MinQuery = *minQuery
	}
	if set["qmax"] {
		cfg.Server.MaxQuery = *maxQuery
	}
	if set["window"] {
		cfg.Limiter.WindowMs = *windowMs
	}
	if set["max-requests"] {
		cfg.Limiter.MaxRequests = *maxRequests
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ PrefixServe ] Serves prefix word suggestions, fast.")
	logger.Print("", "version", Version)
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(addr string, words int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("words indexed: %d", words)
	log.Infof("listening on: ( %s )", addr)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
