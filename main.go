package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/charmbracelet/log"

	"github.com/intio/tilewm/internal/config"
)

var (
	version    string
	listenAddr string
	configPath string
	verbose    bool
)

// newLogger creates the process-wide logger, writing to w and filtering
// at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func main() {
	opts, _, err := getopt.Getopts(os.Args, "l:c:v")
	if err != nil {
		log.Fatal("parsing flags", "err", err)
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'l':
			listenAddr = opt.Value
		case 'c':
			configPath = opt.Value
		case 'v':
			verbose = true
		}
	}
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	log.SetDefault(newLogger(os.Stderr, level))
	if version != "" {
		log.Info("starting", "version", version)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("loading config", "err", err)
	}
	if listenAddr != "" {
		cfg.Listen = listenAddr
	}

	x, err := dialX(cfg)
	if err != nil {
		log.Fatal("starting", "err", err)
	}
	defer x.Disconnect()
	if err := x.initKeys(cfg.Bindings); err != nil {
		log.Fatal("grabbing keys", "err", err)
	}

	wm := NewWM(cfg, x)
	existing, err := x.existingWindows()
	if err != nil {
		log.Warn("listing existing windows", "err", err)
	}
	for _, id := range existing {
		if err := wm.Manage(id); err != nil {
			log.Warn("adopting window", "id", id, "err", err)
		}
	}

	var api = NewAPIServer(wm, cfg.Listen)
	go api.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := wm.Run(ctx, x.events()); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("event loop", "err", err)
	}
}
