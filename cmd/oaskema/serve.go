package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/oaskema/internal/config"
	"github.com/reoring/oaskema/middleware"
	"github.com/reoring/oaskema/openapi"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the configured routes with request validation",
		Long: `serve registers every configured route behind its validators. Valid
requests are answered with the parsed values per location; invalid ones get a
400 with the validation issues. The document is served at serve.docs_path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Serve.Addr = addr
			}
			h, err := newServer(a.cfg, a.logger)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return listen(ctx, a.cfg.Serve.Addr, h, a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides serve.addr)")
	return cmd
}

// newServer builds the validating router for cfg.
func newServer(cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	rt := middleware.NewRouter(newDocument(cfg), middleware.WithRouterLogger(logger))
	cache := openapi.NewCache()
	for _, r := range cfg.Routes {
		validators := make([]*middleware.Validation, 0, len(r.Inputs))
		for _, in := range r.Inputs {
			n, err := in.Schema.Node()
			if err != nil {
				return nil, errors.Wrapf(err, "%s %s", r.Method, r.Path)
			}
			validators = append(validators, middleware.Validator(openapi.Location(in.In), n,
				middleware.WithCache(cache), middleware.WithLogger(logger)))
		}
		if err := rt.Handle(r.Method+" "+r.Path, routeOperation(r), echoParsed(validators), validators...); err != nil {
			return nil, err
		}
	}
	rt.ServeDocument("GET " + cfg.Serve.DocsPath)
	return rt, nil
}

// echoParsed answers with the parsed value of every validated location.
func echoParsed(validators []*middleware.Validation) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out := map[string]any{}
		for _, v := range validators {
			if val, ok := middleware.ValueFromContext(r.Context(), v.Location()); ok {
				out[string(v.Location())] = val
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})
}

func listen(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}
