package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"causeway/internal/http/handlers"
	"causeway/internal/infra"
	"causeway/internal/middleware"
)

// Options carries the router's cross-cutting settings.
type Options struct {
	Logger          infra.Logger
	AllowedOrigins  []string
	RateLimitPerMin int
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	// StaticDir is served under /static when set.
	StaticDir string
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	// Health & docs
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))

		r.Post("/quote", app.Quote)

		r.Route("/causes", func(r chi.Router) {
			r.Get("/", app.ListCauses)
			r.Post("/", app.CreateCause)
			r.Post("/donate", app.Donate)
			r.Post("/find-drafts", app.FindDrafts)
			r.Get("/drafts/{id}/status", app.DraftStatus)
			r.Post("/validate/{field}", app.ValidateField)
			r.Get("/{id}", app.GetCause)
			r.Get("/{id}/quote", app.CauseQuote)
		})

		r.Get("/wallet/{address}/user", app.WalletUser)
		r.Post("/upload-image", app.UploadImage)
	})

	if dir := strings.TrimSpace(opts.StaticDir); dir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	}

	return r
}
