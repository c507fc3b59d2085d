package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/poll-server/cliparse"
	"github.com/danielhkuo/poll-server/db"
	"github.com/danielhkuo/poll-server/middleware"
	"github.com/danielhkuo/poll-server/router"
	"github.com/danielhkuo/poll-server/state"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Pick the snapshot gateway: database when a URL is configured,
	// otherwise the JSON state file
	var gw db.Gateway
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		if err := db.CreateSchema(conn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready")

		gw = db.NewSQLStore(conn)
	} else {
		gw = db.NewFileStore(cfg.StateFile)
	}

	// Load the saved state, or bootstrap a fresh one
	st, err := loadState(gw, cfg)
	if err != nil {
		slog.Error("state initialization failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(st, gw, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		return
	}
	slog.Info("Server closed")

	// Persist on shutdown so sessions and polls survive a restart
	if err := gw.Save(st.Snapshot()); err != nil {
		slog.Error("failed to save state on shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("state snapshot saved on shutdown")
}

// loadState restores the snapshot through the gateway, falling back to a
// fresh bootstrap state when nothing loadable exists. A bootstrap is
// saved immediately so the new signing key survives a restart.
func loadState(gw db.Gateway, cfg cliparse.Config) (*state.State, error) {
	snap, err := gw.Load()
	if err == nil {
		st, restoreErr := state.FromSnapshot(snap, cfg.SessionTTL())
		if restoreErr == nil {
			slog.Info("state restored from snapshot")
			return st, nil
		}
		err = restoreErr
	}

	slog.Warn("failed to load state snapshot, bootstrapping", "error", err)

	st, info, err := state.Bootstrap(cfg.SessionTTL())
	if err != nil {
		return nil, err
	}

	// Surfaced once; only the salted hash is stored
	fmt.Printf("bootstrap admin credentials: username=%s password=%s\n",
		info.AdminUsername, info.AdminPassword)

	// Signing key persistence is mandatory: without this save, every
	// cookie issued before the first /save_state would die on restart
	if err := gw.Save(st.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to persist bootstrap state: %w", err)
	}

	return st, nil
}
