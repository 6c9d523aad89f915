package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Sternrassler/vod-catalog-client/pkg/catalog"
	"github.com/Sternrassler/vod-catalog-client/pkg/client"
	"github.com/Sternrassler/vod-catalog-client/pkg/filter"
	"github.com/Sternrassler/vod-catalog-client/pkg/logging"
	"github.com/Sternrassler/vod-catalog-client/pkg/metrics"
	"github.com/Sternrassler/vod-catalog-client/pkg/pagination"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	keyListen = "listen"

	defaultServeLimit = 20
	maxServeLimit     = 500
	shutdownTimeout   = 10 * time.Second
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve browse, search and season lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, cleanup, err := newCatalog(v)
			if err != nil {
				return err
			}
			defer cleanup()

			srv := newServer(cat, v.GetInt(keyPageSize))
			return srv.run(cmd.Context(), v.GetString(keyListen))
		},
	}

	cmd.Flags().String(keyListen, ":8080", "listen address")
	lo.Must0(v.BindPFlag(keyListen, cmd.Flags().Lookup(keyListen)))
	return cmd
}

type server struct {
	cat      *catalog.Catalog
	pageSize int
	logger   zerolog.Logger
}

func newServer(cat *catalog.Catalog, pageSize int) *server {
	return &server{
		cat:      cat,
		pageSize: pageSize,
		logger:   logging.NewLogger("catalog-server"),
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /browse", s.browseHandler)
	mux.HandleFunc("GET /search", s.searchHandler)
	mux.HandleFunc("GET /seasons", s.seasonsHandler)
	return mux
}

func (s *server) run(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting catalog server")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down catalog server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

func (s *server) browseHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	p, err := browseParamsFromQuery(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := p.options()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit, err := limitParam(q.Get("limit"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	engine := s.cat.Browse(opts, pagination.WithPageSize(s.pageSize))
	items, err := take(r.Context(), engine, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSONResponse(w, map[string]any{
		"total": engine.CurrentTotal().OrElse(0),
		"items": items,
	})
}

func (s *server) searchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("q")
	if text == "" {
		http.Error(w, "missing q", http.StatusBadRequest)
		return
	}

	results := s.cat.Query(text, pagination.WithPageSize(s.pageSize))

	facetName := q.Get("facet")
	if facetName == "" {
		preview, err := results.Preview(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSONResponse(w, preview)
		return
	}

	limit, err := limitParam(q.Get("limit"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items, err := facetItems(r.Context(), results, facetName, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSONResponse(w, map[string]any{"facet": facetName, "items": items})
}

func (s *server) seasonsHandler(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("locale")
	if raw == "" {
		raw = string(filter.LocaleEnUS)
	}
	locale, err := filter.ParseLocale(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	seasons, err := s.cat.SimulcastSeasons(r.Context(), locale)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSONResponse(w, seasons)
}

// limitParam reads the item limit of a request. Unlike the CLI, the server
// never drains a whole result set: 0 and values above maxServeLimit are rejected.
func limitParam(raw string) (int, error) {
	if raw == "" {
		return defaultServeLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxServeLimit {
		return 0, fmt.Errorf("%w: limit %q (want 1..%d)", filter.ErrUnknownValue, raw, maxServeLimit)
	}
	return n, nil
}

// statusFor maps an error to the HTTP status returned to the caller.
func statusFor(err error) int {
	switch {
	case errors.Is(err, filter.ErrUnknownValue) && !client.IsDecode(err):
		return http.StatusBadRequest
	case errors.Is(err, client.ErrThrottled), client.ClassOf(err) == client.ErrorClassRateLimit:
		return http.StatusTooManyRequests
	case client.IsTransport(err), client.IsDecode(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	s.logger.Warn().
		Err(err).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("Request failed")
	http.Error(w, err.Error(), status)
}

func writeJSONResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
