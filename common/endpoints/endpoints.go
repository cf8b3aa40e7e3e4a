package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/IgorRikhard/GameArchitecture/common/stats"
	"github.com/IgorRikhard/GameArchitecture/ice"
)

// Addr is the host:port the admin server listens on.
type Addr string

func NewAdminServer(addr Addr, stat stats.StatsReceiver, ctr *ice.Container) *AdminServer {
	s := &AdminServer{
		Addr:  string(addr),
		Stats: stat,
		ctr:   ctr,
	}
	s.router = s.routes()
	return s
}

// AdminServer serves health, stats and the bindings of one container.
type AdminServer struct {
	Addr   string
	Stats  stats.StatsReceiver
	ctr    *ice.Container
	router chi.Router
}

func (s *AdminServer) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.count)
	r.NotFound(helpHandler)
	r.Get("/health", healthHandler)
	r.Get("/admin/metrics.json", s.statsHandler)
	r.Get("/admin/bindings.json", s.bindingsHandler)
	return r
}

// Handler returns the router, for tests and for mounting elsewhere.
func (s *AdminServer) Handler() http.Handler {
	return s.router
}

// Serve blocks until ctx is done or the listener fails.
func (s *AdminServer) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.router}
	s.Stats.Gauge(stats.AdminServerStartedGauge).Update(1)
	defer s.Stats.Gauge(stats.AdminServerStartedGauge).Update(0)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Infof("Serving http & stats on %v", s.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *AdminServer) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Stats.Counter(stats.AdminRequestCounter).Inc(1)
		next.ServeHTTP(w, r)
	})
}

func helpHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Common paths: '/health', '/admin/metrics.json', '/admin/bindings.json'", 501)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "ok")
}

const contentTypeHdr = "Content-Type"
const contentTypeVal = "application/json; charset=utf-8"

func (s *AdminServer) statsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(contentTypeHdr, contentTypeVal)

	pretty := r.URL.Query().Get("pretty") == "true"
	str := s.Stats.Render(pretty)
	if _, err := io.Copy(w, bytes.NewBuffer(str)); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
}

// Binding is the JSON form of an ice.BindingInfo.
type Binding struct {
	Key            string `json:"key"`
	Kind           string `json:"kind"`
	Implementation string `json:"implementation,omitempty"`
	Sequence       int    `json:"sequence"`
}

// Bindings is the body of /admin/bindings.json.
type Bindings struct {
	Container string    `json:"container"`
	Bindings  []Binding `json:"bindings"`
}

// DescribeBindings lists ctr's bindings in registration order.
func DescribeBindings(ctr *ice.Container) Bindings {
	out := Bindings{Container: ctr.ID(), Bindings: []Binding{}}
	for _, b := range ctr.Bindings() {
		e := Binding{Key: b.Key.String(), Kind: b.Kind.String(), Sequence: b.Sequence}
		if b.Implementation != nil {
			e.Implementation = b.Implementation.String()
		}
		out.Bindings = append(out.Bindings, e)
	}
	return out
}

func (s *AdminServer) bindingsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(contentTypeHdr, contentTypeVal)
	enc := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(DescribeBindings(s.ctr)); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

// MakeStatsReceiver returns a receiver whose rendered stats are latched
// snapshots, taken every latch, in finagle format.
func MakeStatsReceiver(latch time.Duration) (stats.StatsReceiver, func()) {
	s, cancel := stats.NewCustomStatsReceiver(stats.NewFinagleStatsRegistry, latch)
	return s.Precision(time.Millisecond), cancel
}
