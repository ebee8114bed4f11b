package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/hoanghai1803/draftpad/internal/ai"
	"github.com/hoanghai1803/draftpad/internal/api"
	"github.com/hoanghai1803/draftpad/internal/config"
	"github.com/hoanghai1803/draftpad/internal/drafts"
	"github.com/hoanghai1803/draftpad/internal/importer"
	"github.com/hoanghai1803/draftpad/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	// Open the key-value store that holds the draft collection.
	var kv storage.KV
	switch cfg.Storage.Backend {
	case "memory":
		kv = storage.NewMemoryKV()
		slog.Warn("using in-memory storage, drafts are lost on exit")
	default:
		store, err := storage.Open(ctx, cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()
		kv = store
	}

	local := drafts.NewStore(kv, cfg.Storage.Key)
	deps := api.Deps{
		Drafts:   local,
		NewID:    drafts.NewID,
		Importer: importer.New(0, 0),
	}
	if cfg.Storage.API == "remote" {
		// The remote API assigns ids itself.
		deps.Drafts = drafts.NewRemoteStore(local, cfg.Storage.RemoteLatency())
		deps.NewID = nil
		slog.Info("using remote drafts API", "latency", cfg.Storage.RemoteLatency().String())
	}

	backendCfg := ai.BackendConfig{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		Endpoint: cfg.AI.Endpoint,
	}
	if cfg.AI.UseMock() {
		backendCfg.Provider = ai.ProviderMock
	}
	if backendCfg.Model == "" {
		backendCfg.Model = ai.DefaultModel(backendCfg.Provider)
	}
	backend, err := ai.NewBackend(ctx, backendCfg)
	if err != nil {
		return fmt.Errorf("creating AI backend: %w", err)
	}
	deps.Assistant = ai.NewAssistant(backend)
	slog.Info("AI assistant configured", "provider", backendCfg.Provider, "model", backendCfg.Model)

	// Determine server address (localhost only for security).
	addr := fmt.Sprintf("localhost:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Auto-open browser after a short delay to let the server start.
	if cfg.Server.AutoOpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			openBrowser("http://" + addr + "/api/drafts")
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openBrowser opens the given URL in the user's default browser.
// It is a fire-and-forget operation; errors are silently ignored.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
