// Package web serves the post table as an HTML page.
package web

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/urfave/negroni"

	"tableflip.dev/posts/pkg/post"
	"tableflip.dev/posts/pkg/viewstate"
)

// Server renders one ViewState, filled by a single fetch started with Start.
type Server struct {
	fetcher post.Fetcher
	logger  *log.Logger
	state   *viewstate.ViewState

	once sync.Once
	done chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New returns a server for fetcher. A nil logger uses log.Default().
func New(fetcher post.Fetcher, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		fetcher: fetcher,
		logger:  logger,
		state:   viewstate.New(),
		done:    make(chan struct{}),
		cancel:  func() {},
	}
}

// State exposes the posts the page renders.
func (s *Server) State() *viewstate.ViewState {
	return s.state
}

// Start issues the one fetch in the background. Calls after the first are
// no-ops. Cancelling ctx abandons the request.
func (s *Server) Start(ctx context.Context) {
	s.once.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		s.mu.Lock()
		s.cancel = cancel
		s.mu.Unlock()
		go func() {
			defer close(s.done)
			s.resolve(ctx)
		}()
	})
}

func (s *Server) resolve(ctx context.Context) {
	if s.fetcher == nil {
		s.logger.Printf("error fetching posts: no fetcher configured")
		s.state.Resolve(nil, errors.New("no fetcher configured"))
		return
	}
	posts, err := s.fetcher.Fetch(ctx)
	if ctx.Err() != nil {
		// Torn down mid-flight; leave the state as it is.
		return
	}
	if err != nil {
		s.logger.Printf("error fetching posts: %v", err)
		s.state.Resolve(nil, err)
		return
	}
	s.state.Resolve(posts, nil)
}

// Done is closed once the fetch has finished or been abandoned.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Stop cancels an in-flight fetch. It is safe to call from any goroutine.
func (s *Server) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	cancel()
}

// Handler returns the routed, logged and recovering HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	r.HandleFunc("/maintenance/ping", s.handlePing).Methods(http.MethodGet)

	logger := negroni.NewLogger()
	logger.ALogger = s.logger
	n := negroni.New(negroni.NewRecovery(), logger)
	n.UseHandler(r)
	return n
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := renderPage(&buf, s.state.Posts()); err != nil {
		s.logger.Printf("error rendering page: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong"))
}

// ListenAndServe starts the fetch, serves on addr and shuts down gracefully
// when ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.Start(ctx)
	defer s.Stop()

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
