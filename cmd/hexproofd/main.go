// Command hexproofd serves the prove/verify HTTP API described by this
// repo's internal/server package: load config, load or generate the
// Groth16 keys, start the prover pool, serve, and shut down gracefully
// on SIGINT/SIGTERM.
//
// Wiring grounded on this codebase's reference main.rs (load-or-setup
// then serve) and cmd/api/main.go's flag+signal+graceful-shutdown
// pattern.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hexproof/hexproof/internal/config"
	"github.com/hexproof/hexproof/internal/keys"
	"github.com/hexproof/hexproof/internal/logging"
	"github.com/hexproof/hexproof/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "hexproofd:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logging.Init(cfg.LogLevel)

	log.Info().
		Str("listen_addr", cfg.ListenAddr).
		Str("params_dir", cfg.ParamsDir).
		Int("prover_pool_size", cfg.ProverPoolSize).
		Msg("starting hexproofd")

	lifecycle, err := keys.LoadOrSetup(cfg.ParamsDir, cfg.MaxVertices, cfg.MaxHashes)
	if err != nil {
		return fmt.Errorf("loading/generating keys: %w", err)
	}

	pool := server.NewProverPool(lifecycle.CCS, lifecycle.PK, cfg.ProverPoolSize, cfg.ProverQueueSize)
	defer pool.Close()

	srv := server.New(lifecycle.VK, pool)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Engine(),
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info().Msg("hexproofd exited cleanly")
	return nil
}
