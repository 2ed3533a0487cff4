package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/viant/invitation"
	"github.com/viant/invitation/capability"
)

const shutdownTimeout = 5 * time.Second

// NewRouter mounts the callback endpoint, resource snapshot updates and metrics.
func NewRouter(srv *invitation.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodPost, srv.Options.Ingress.Path, srv.Handler())
	r.Put("/resource", func(w http.ResponseWriter, req *http.Request) {
		resource := &capability.Resource{}
		if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, 1<<20)).Decode(resource); err != nil {
			http.Error(w, "invalid resource", http.StatusBadRequest)
			return
		}
		srv.Resolver.Update(resource)
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/capabilities", func(w http.ResponseWriter, req *http.Request) {
		supported := map[string]bool{}
		for _, c := range capability.All() {
			supported[c.String()] = srv.Invitation.Supports(c)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(supported)
	})
	if srv.Options.Metrics.Enabled {
		r.Handle(srv.Options.Metrics.Path, promhttp.Handler())
	}
	return r
}

// listener serves handler until stopped.
type listener struct {
	server *http.Server
	errors chan error
}

func (l *listener) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := l.server.Shutdown(ctx); err != nil {
		_ = l.server.Close()
		return err
	}
	return nil
}

func listen(addr string, handler http.Handler) (*listener, error) {
	socket, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	ret := &listener{server: &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}, errors: make(chan error, 1)}
	go func() {
		if err := ret.server.Serve(socket); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ret.errors <- err
		}
	}()
	return ret, nil
}
