// Package tempmail provisions disposable mailboxes against the upstream mail
// provider and exposes the JSON surface the browser client polls.
package tempmail

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/suaib92/tempmailr/emailgenerator"
	"github.com/suaib92/tempmailr/mailtm"
)

// version number - this is overridden at build time to inject the commit hash
var version = "dev"

// Server bundles the provisioning pipeline together for dependency injection
// into http handlers.
type Server struct {
	client      MailClient
	provisioner *Provisioner
	Router      *mux.Router

	cfg Config
}

// Config contains key configuration parameters to be passed to New()
type Config struct {
	// UpstreamURL is the base URL of the mail provider's API. Empty selects
	// the production endpoint.
	UpstreamURL string
	// FallbackDomains is used when live domain discovery is down or empty.
	FallbackDomains []string
	// AllowedOrigins is the CORS allow-list for cross-origin embedding.
	// Empty disables CORS handling entirely.
	AllowedOrigins []string
	// UpstreamMinInterval spaces outbound provider requests when set.
	UpstreamMinInterval time.Duration
	Developing          bool
}

// New returns a tempmail server with the given settings.
func New(cfg Config) (*Server, error) {
	client := mailtm.New(cfg.UpstreamURL, mailtm.WithMinInterval(cfg.UpstreamMinInterval))

	clock := clockwork.NewRealClock()
	resolver := NewDomainResolver(client, cfg.FallbackDomains, clock)

	s := Server{
		client:      client,
		provisioner: NewProvisioner(client, resolver, emailgenerator.New()),
		cfg:         cfg,
	}

	s.Router = mux.NewRouter()
	s.Router.StrictSlash(true) // means router will match both "/path" and "/path/"

	api := alice.New(RequestID, SetVersionHeader, JSONContentType, CacheControl(0))

	s.Router.Handle("/generate", api.ThenFunc(s.NewMailboxJSON)).Methods(http.MethodPost)
	s.Router.Handle("/generate", api.ThenFunc(s.GenerateHealthJSON)).Methods(http.MethodGet)
	s.Router.Handle("/messages", api.ThenFunc(s.GetMessagesJSON)).Methods(http.MethodGet)
	s.Router.Handle("/message", api.ThenFunc(s.GetMessageJSON)).Methods(http.MethodGet)

	// Preflight for cross-origin embedding. The cors middleware intercepts
	// these when an allow-list is configured; the bare handler covers the
	// same-origin deployment.
	for _, path := range []string{"/generate", "/messages", "/message"} {
		s.Router.Handle(path, http.HandlerFunc(noContent)).Methods(http.MethodOptions)
	}

	s.Router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.Router.HandleFunc("/ping", s.Ping)

	s.Router.Use(RestoreRealIP)

	if len(cfg.AllowedOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         3600,
		})
		s.Router.Use(c.Handler)
	}

	return &s, nil
}

// Ping returns PONG when called
func (s *Server) Ping(w http.ResponseWriter, r *http.Request) {
	_, err := w.Write([]byte("PONG"))
	if err != nil {
		log.Printf("Ping: failed to write out response: %v", err)
	}
}

func noContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
