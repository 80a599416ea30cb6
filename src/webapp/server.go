package webapp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jiaming2012/broker-client/src/eventpubsub"
	"github.com/jiaming2012/broker-client/src/logger"
	"github.com/jiaming2012/broker-client/src/render"
)

const serviceName = "webapp"

// Binder subscribes the page handlers to a dispatcher.
type Binder interface {
	Bind(d *eventpubsub.Dispatcher) error
}

type Server struct {
	binder     Binder
	renderer   *render.HTMLRenderer
	sessions   *SessionStore
	decoder    *schema.Decoder
	router     *mux.Router
}

func NewServer(binder Binder, renderer *render.HTMLRenderer, sessions *SessionStore) *Server {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	s := &Server{
		binder:     binder,
		renderer:   renderer,
		sessions:   sessions,
		decoder:    decoder,
		router:     mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) handleFunc(router *mux.Router, path string, f http.HandlerFunc) *mux.Route {
	// Configure the "http.route" for the HTTP instrumentation.
	handler := otelhttp.WithRouteTag(path, f)
	return router.Handle(path, handler)
}

func (s *Server) setupRoutes() {
	s.router.Use(logger.Middleware)

	s.handleFunc(s.router, "/", s.loginPageHandler).Methods(http.MethodGet)
	s.handleFunc(s.router, "/login", s.loginPageHandler).Methods(http.MethodGet)
	s.handleFunc(s.router, "/login", s.loginHandler).Methods(http.MethodPost)
	s.handleFunc(s.router, "/healthz", s.healthHandler).Methods(http.MethodGet)

	s.handleFunc(s.router, "/order", s.orderPageHandler).Methods(http.MethodGet)
	s.handleFunc(s.router, "/order", s.orderHandler).Methods(http.MethodPost)

	orderRouter := s.router.PathPrefix("/order").Subrouter()
	s.handleFunc(orderRouter, "/search", s.stockSearchHandler).Methods(http.MethodPost)
	s.handleFunc(orderRouter, "/total", s.totalPriceHandler).Methods(http.MethodPost)
	s.handleFunc(orderRouter, "/balance", s.balanceHandler).Methods(http.MethodGet)
}

// acquire locks the request's session, binding a dispatcher on first use.
func (s *Server) acquire(w http.ResponseWriter, r *http.Request) (*session, func(), error) {
	sess, release := s.sessions.Acquire(w, r)

	if sess.dispatcher == nil {
		d := eventpubsub.NewDispatcher()
		if err := s.binder.Bind(d); err != nil {
			release()
			return nil, nil, fmt.Errorf("Server.acquire: %w", err)
		}
		sess.dispatcher = d
	}

	return sess, release, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Handler: otelhttp.NewHandler(s, serviceName),
		Addr:    addr,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("Server.Run: failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("Server.Run: shutdown: %w", err)
	}

	log.Info("Server: gracefully stopped!")
	return nil
}
