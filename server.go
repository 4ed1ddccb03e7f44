package etherblinks

import (
	"context"
	"net/http"
	"time"
)

type Server struct {
	httpServer *http.Server
}

// NewServer builds the listener up front so Shutdown may be called from
// another goroutine at any point after construction, even before Run.
func NewServer(port string, handler http.Handler) *Server {
	return &Server{httpServer: &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Receipt lookups go to the chain RPC.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}}
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
