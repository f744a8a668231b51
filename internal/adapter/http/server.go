package adapthttp

import (
	"log/slog"
	"net/http"

	"maonav/internal/app"
)

// Services are the application services the HTTP adapter drives.
type Services struct {
	Auth       *app.AuthService
	Dashboard  *app.DashboardService
	Categories *app.CategoryService
	Sites      *app.SiteService
	Settings   *app.SettingsService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth       *app.AuthService
	dashboard  *app.DashboardService
	categories *app.CategoryService
	sites      *app.SiteService
	settings   *app.SettingsService
	log        *slog.Logger
	webDir     string
	corsOrigin string
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger used for access and security logs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithCORSOrigin sets the Access-Control-Allow-Origin value.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) { s.corsOrigin = origin }
}

// New creates a Server wired to the given application services.
func New(svc Services, webDir string, opts ...Option) *Server {
	s := &Server{
		auth:       svc.Auth,
		dashboard:  svc.Dashboard,
		categories: svc.Categories,
		sites:      svc.Sites,
		settings:   svc.Settings,
		log:        slog.Default(),
		webDir:     webDir,
		corsOrigin: "*",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("GET /public/categories", s.handlePublicCategories)
	api.HandleFunc("GET /public/settings", s.handlePublicSettings)

	api.HandleFunc("POST /auth/login", s.handleLogin)
	api.Handle("POST /auth/logout", s.requireAdmin(http.HandlerFunc(s.handleLogout)))
	api.HandleFunc("POST /auth/setup", s.handleSetup)

	admin := func(pattern string, h http.HandlerFunc) {
		api.Handle(pattern, s.requireAdmin(h))
	}
	admin("GET /admin/categories", s.handleCategoriesList)
	admin("POST /admin/categories", s.handleCategoriesCreate)
	admin("PUT /admin/categories", s.handleCategoriesUpdate)
	admin("DELETE /admin/categories/{id}", s.handleCategoryDelete)

	admin("GET /admin/sites", s.handleSitesList)
	admin("POST /admin/sites", s.handleSitesCreate)
	admin("PUT /admin/sites/{id}", s.handleSiteUpdate)
	admin("DELETE /admin/sites/{id}", s.handleSiteDelete)

	admin("GET /admin/settings", s.handleSettingsList)
	admin("PUT /admin/settings", s.handleSettingsUpdate)
	admin("PUT /admin/password", s.handlePasswordChange)

	// Unknown admin routes still demand a token before reporting 404.
	admin("/admin/", s.handleNotFound)
	api.HandleFunc("/", s.handleNotFound)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(s.withCORS(withNoCache(root)))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found")
}
