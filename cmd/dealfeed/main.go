package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dealfeed/client"
	"dealfeed/config"
	"dealfeed/feedstore"
	"dealfeed/livechannel"
	"dealfeed/logger"
	"dealfeed/session"
	"dealfeed/snapshot"
	"dealfeed/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	apiURL := flag.String("api", cfg.APIURL, "Deal feed API base URL")
	wsURL := flag.String("ws", cfg.StreamURL, "Stream URL (derived from -api when empty)")
	reconnect := flag.Bool("reconnect", cfg.Reconnect, "Redial the stream after it drops")
	flag.Parse()

	// Logs go to a file so they do not tear the terminal UI
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", cfg.LogFile, err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := logger.New(logFile, cfg.LogLevel, false)

	streamURL := *wsURL
	if streamURL == "" {
		streamURL = livechannel.StreamURL(*apiURL, cfg.FallbackOrigin)
	}
	log.Info("starting deal feed client", "api", *apiURL, "stream", streamURL, "reconnect", *reconnect)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.NewClient(*apiURL)
	store := feedstore.New(cfg.StoreCap)
	channel := livechannel.New(livechannel.Config{
		URL:      streamURL,
		Reporter: livechannel.LogReporter{Logger: log},
		Reconnect: livechannel.ReconnectPolicy{
			Enabled:         *reconnect,
			MaxAttempts:     cfg.ReconnectMaxTries,
			InitialInterval: cfg.ReconnectInitial,
			MaxInterval:     cfg.ReconnectMaxBackoff,
		},
		Logger: log,
	})
	sess := session.New(session.Config{
		Store:   store,
		Loader:  snapshot.NewLoader(api, store, cfg.FeedLimit, log),
		Channel: channel,
		Logger:  log,
	})
	sess.Start(ctx)
	defer sess.Close()

	program := tea.NewProgram(tui.NewModel(ctx, sess, api, cfg.Preferences), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
