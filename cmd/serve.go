package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/proofpal/internal/llm"
	"github.com/abhisek/proofpal/internal/problems"
	"github.com/abhisek/proofpal/internal/server"
	"github.com/abhisek/proofpal/internal/store"
	"github.com/abhisek/proofpal/internal/tutor"
	"github.com/abhisek/proofpal/static"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "Port to listen on (overrides PROOFPAL_PORT, default 8000)")
	serveCmd.Flags().String("static", "", "Directory of web assets to serve instead of the bundled UI")
}

func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()

	// Credential check happens here, before anything listens: a missing
	// key should stop the process at startup, not the first request.
	llmCfg := llm.ConfigFromEnv()
	if err := llmCfg.Validate(); err != nil {
		return fmt.Errorf("LLM configuration: %w", err)
	}

	st, repo, err := openEventLog(cmd)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	provider, err := llm.NewProvider(ctx, llmCfg, repo)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	problemStore, err := loadProblems(cmd)
	if err != nil {
		return err
	}
	log.Printf("loaded %d problems", problemStore.Len())

	staticFS, err := resolveStaticFS(cmd)
	if err != nil {
		return err
	}

	svc := tutor.New(problemStore, provider)
	handler := server.New(svc, staticFS)

	port := resolveOption(cmd, "port", "PROOFPAL_PORT", "8000")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("proofpal listening on :%s (provider %s, model %s)", port, llmCfg.Provider, provider.ModelID())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-quit:
	}

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("server stopped")
	return nil
}

// openEventLog opens the SQLite event log. A broken event log degrades to
// no logging instead of refusing to serve students.
func openEventLog(cmd *cobra.Command) (*store.Store, store.EventRepo, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve event log path: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		log.Printf("warning: event log unavailable (%v); LLM calls will not be recorded", err)
		return nil, store.NopEventRepo{}, nil
	}
	return st, st.EventRepo(), nil
}

func loadProblems(cmd *cobra.Command) (*problems.Store, error) {
	path := resolveOption(cmd, "problems", "PROOFPAL_PROBLEMS", "")
	ps, err := problems.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load problems: %w", err)
	}
	return ps, nil
}

func resolveStaticFS(cmd *cobra.Command) (fs.FS, error) {
	dir := resolveOption(cmd, "static", "PROOFPAL_STATIC_DIR", "")
	if dir == "" {
		return static.FS, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("static dir: %w", err)
	}
	return os.DirFS(dir), nil
}

// resolveDBPath returns the event log path using --db (highest priority),
// then PROOFPAL_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveOption reads a flag, falling back to an env var, then a default.
func resolveOption(cmd *cobra.Command, flag, env, def string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}
