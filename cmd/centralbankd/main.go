// Command centralbankd runs the central-bank accounting engine: it loads
// its ledger, replays it into memory, bootstraps @root, and serves
// POST /api/transaction over HTTP until it receives SIGINT or SIGTERM.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/wizardbeardstudio/centralbank/internal/engine"
	"github.com/wizardbeardstudio/centralbank/internal/ledger"
	"github.com/wizardbeardstudio/centralbank/internal/ledger/store"
	"github.com/wizardbeardstudio/centralbank/internal/platform/clock"
	"github.com/wizardbeardstudio/centralbank/internal/platform/metrics"
	"github.com/wizardbeardstudio/centralbank/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configPath := envOr("CENTRALBANK_CONFIG", "config.json")
	cfg, err := service.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ledgerStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("open ledger store: %v", err)
	}
	defer ledgerStore.Close()

	processor := ledger.NewProcessor(ledgerStore)

	state := service.SeedRootAccount(engine.NewState())
	state, lastID, err := ledger.Replay(ctx, ledgerStore, state)
	if err != nil {
		log.Fatalf("replay ledger: %v", err)
	}

	env := service.NewEnvelope(state, processor, clock.RealClock{}, lastID)
	if err := service.MintRootTokenIfNeeded(ctx, env); err != nil {
		log.Fatalf("bootstrap root token: %v", err)
	}
	service.PrintRootTokens(os.Stdout, env)

	m := metrics.New()
	httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: service.NewMux(env, m)}

	go func() {
		log.Printf("http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}

// openStore selects a Store implementation by the URL scheme of cfg.Store:
// file:// for the JSON-lines append-only file, postgres:// / postgresql://
// for the Postgres-backed store.
func openStore(ctx context.Context, storeURL string) (store.Store, error) {
	switch {
	case strings.HasPrefix(storeURL, "file://"):
		return store.OpenFileStore(strings.TrimPrefix(storeURL, "file://"))
	case strings.HasPrefix(storeURL, "postgres://"), strings.HasPrefix(storeURL, "postgresql://"):
		return store.OpenPostgresStore(ctx, storeURL)
	default:
		return store.OpenFileStore(storeURL)
	}
}

func envOr(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
