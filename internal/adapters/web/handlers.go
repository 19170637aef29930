package web

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shopkeeper/internal/app"
	"shopkeeper/internal/ui"
	webui "shopkeeper/web"
)

// Handler holds the ApplicationService, the chi router, the nonce store,
// and the action dispatch table.
type Handler struct {
	svc        app.ApplicationService
	router     chi.Router
	nonces     *nonceStore
	actions    map[string]actionEntry
	screens    *ui.Router
	jwtSecret  string
	fileServer http.Handler
	pages      *pageTemplates
	log        *zap.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, log *zap.Logger, allowedOrigins, jwtSecret string) http.Handler {
	staticFS, err := fs.Sub(webui.Static, "static")
	if err != nil {
		panic("web/static embed sub-FS failed: " + err.Error())
	}

	h := &Handler{
		svc:        svc,
		nonces:     newNonceStore(),
		screens:    ui.NewRouter(ui.Descriptors()...),
		jwtSecret:  jwtSecret,
		fileServer: http.FileServer(http.FS(staticFS)),
		pages:      parsePageTemplates(),
		log:        log,
	}
	h.actions = h.actionTable()

	// Start background maintenance goroutines.
	h.nonces.startPurge(context.Background())

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))

	// ── Health (public) ───────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Auth (public API) ─────────────────────────────────────────────────────
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Static files served at /static/* ─────────────────────────────────────
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/static", h.fileServer).ServeHTTP(w, req)
	})

	// ── Browser login/logout (public HTML) ───────────────────────────────────
	r.Get("/login", h.loginPage)
	r.Post("/login", h.loginFormSubmit)
	r.Post("/logout", h.logoutPage)

	// ── Protected browser routes (redirect to /login if unauthenticated) ─────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuthBrowser)
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/admin/dashboard", http.StatusSeeOther)
		})
		r.Get("/admin/dashboard", h.dashboardPage)
		r.Get("/admin/reports", h.reportsPage)
		r.Get("/admin/settings", h.settingsPage)
		r.Get("/admin/{screen}", h.screenPage)
	})

	// ── Protected API routes (return 401 JSON if unauthenticated) ────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/admin/session", h.session)
		r.Post("/admin/action", h.handleAction)
	})

	h.router = r
	return r
}

// health returns service status and the configured store name.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	storeName := ""
	if settings, err := h.svc.GetSettings(r.Context()); err == nil {
		storeName = settings.StoreName
	}

	type response struct {
		Status string `json:"status"`
		Store  string `json:"store"`
	}

	writeJSON(w, response{Status: "ok", Store: storeName})
}
