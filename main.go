package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	stdnet "net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"CollabCanvas/internal/config"
	"CollabCanvas/internal/export"
	"CollabCanvas/internal/hub"
	lan "CollabCanvas/internal/net"
	"CollabCanvas/internal/state"
	"CollabCanvas/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	var st state.Store
	switch cfg.Store {
	case "sqlite":
		s, err := store.OpenSQLite(cfg.StorePath)
		if err != nil {
			return err
		}
		defer s.Close()
		st = s
	default:
		st = store.NewFileStore(cfg.StorePath)
	}

	history, err := state.NewHistory(st, slog.Default())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := hub.New(history, slog.Default())
	go h.Run(ctx)

	r := chi.NewRouter()
	r.Get("/ws", h.ServeWS)
	r.Get("/export.pdf", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="canvas.pdf"`)
		if err := export.WritePDF(w, history.Snapshot()); err != nil {
			slog.Error("pdf export failed", "err", err)
		}
	})
	r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))

	if cfg.MDNS {
		if port, err := listenPort(cfg.Addr); err != nil {
			slog.Warn("cannot advertise over mDNS", "addr", cfg.Addr, "err", err)
		} else if mdnsServer, err := lan.Advertise(port); err != nil {
			slog.Warn("mDNS advertisement failed", "err", err)
		} else {
			defer mdnsServer.Shutdown()
		}
	}

	if ip, err := lan.OutgoingIP(); err == nil {
		slog.Info("server ready", "url", fmt.Sprintf("http://%s%s", ip, cfg.Addr))
	}

	server := &http.Server{Addr: cfg.Addr, Handler: r}
	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func listenPort(addr string) (int, error) {
	_, portStr, err := stdnet.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(portStr)
}
