package root

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/aiquest/classifier/pkg/engine"
	"github.com/aiquest/classifier/pkg/orchestrator"
	"github.com/aiquest/classifier/pkg/server"
	"github.com/aiquest/classifier/pkg/session"
)

type serveFlags struct {
	addr         string
	resourcesDir string
}

func newServeCmd() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the questionnaire HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", ":8080", "address to listen on")
	cmd.Flags().StringVar(&flags.resourcesDir, "resources-dir", "resources", "directory containing per-language questionnaire resources")

	return cmd
}

func runServe(ctx context.Context, flags serveFlags) error {
	loader := engine.NewLoader(flags.resourcesDir, engineCacheTTL())

	store, err := newSessionStore()
	if err != nil {
		return RuntimeError{Err: fmt.Errorf("building session store: %w", err)}
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	o := orchestrator.New(orchestrator.Services{Loader: loader, Store: store})
	srv := server.New(o, nil)

	httpSrv := &http.Server{Addr: flags.addr, Handler: srv.Handler()}
	go func() {
		<-ctx.Done()
		_ = httpSrv.Shutdown(context.Background())
	}()

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return RuntimeError{Err: err}
	}
	return nil
}

func engineCacheTTL() time.Duration {
	raw := os.Getenv("ENGINE_CACHE_TTL_SECONDS")
	if raw == "" {
		return 0
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func newSessionStore() (session.Store, error) {
	url := cmp.Or(os.Getenv("SESSION_REDIS_URL"), os.Getenv("REDIS_URL"))
	if url != "" {
		return session.NewRedisStore(url, sessionTTL())
	}
	return session.NewInMemoryStore(sessionTTL(), sessionCleanupInterval(), nil), nil
}

func sessionTTL() time.Duration {
	return durationFromEnvSeconds("SESSION_TTL_SECONDS", 30*time.Minute)
}

func sessionCleanupInterval() time.Duration {
	return durationFromEnvSeconds("SESSION_CLEANUP_INTERVAL", time.Minute)
}

func durationFromEnvSeconds(name string, def time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}
