// Package server exposes the conversions over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetform-go/pkg/sheetform"
)

const shutdownTimeout = 10 * time.Second

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address.
	Addr string
	// AllowedOrigins is the CORS allow-list.
	AllowedOrigins []string
	// MaxUploadSize caps request bodies. If zero, sheetform.DefaultMaxUploadSize applies.
	MaxUploadSize int64
	// FormTitle is the page title of rendered forms.
	FormTitle string
	// Logger receives request and conversion logs. If nil, logrus.StandardLogger is used.
	Logger logrus.FieldLogger
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8000",
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxUploadSize:  sheetform.DefaultMaxUploadSize,
	}
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return logrus.StandardLogger()
}

func (c Config) options() sheetform.Options {
	return sheetform.Options{
		Logger:        c.logger(),
		MaxUploadSize: c.MaxUploadSize,
		FormTitle:     c.FormTitle,
	}
}

// NewHandler builds the router.
func NewHandler(cfg Config) http.Handler {
	h := &handlers{cfg: cfg, log: cfg.logger()}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.StripSlashes)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition", warningsHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", h.root)
	r.Get("/healthz", h.healthz)
	r.Post("/convert", h.convert)
	r.Post("/convert-to-excel", h.convertToExcel)
	r.Post("/convert-to-form", h.convertToForm)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg Config) error {
	log := cfg.logger()
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewHandler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":       cfg.Addr,
			"origins":    cfg.AllowedOrigins,
			"max_upload": humanize.IBytes(uint64(cfg.options().UploadLimit())),
		}).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
