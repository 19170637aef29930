package web

import (
	"context"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shopkeeper/internal/app"
	"shopkeeper/internal/gateway"
	"shopkeeper/internal/i18n"
	"shopkeeper/internal/ui"
	webui "shopkeeper/web"
)

// pageTemplates holds one parsed template set per page, each sharing the
// base layout.
type pageTemplates struct {
	byName map[string]*template.Template
}

func parsePageTemplates() *pageTemplates {
	fsys, err := fs.Sub(webui.Templates, "templates")
	if err != nil {
		panic("web/templates embed sub-FS failed: " + err.Error())
	}

	pages, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		panic("glob page templates failed: " + err.Error())
	}

	byName := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(fsys, "layout.html", page)
		if err != nil {
			panic("parse template " + page + " failed: " + err.Error())
		}
		byName[page[len("pages/"):]] = tmpl
	}
	return &pageTemplates{byName: byName}
}

func (p *pageTemplates) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := p.byName[name]
	if !ok {
		http.Error(w, "template not found: "+name, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = tmpl.ExecuteTemplate(w, "layout.html", data)
}

// pageData feeds the base layout and the page templates.
type pageData struct {
	Title     string
	ActiveNav string
	Username  string
	Role      string
	StoreName string

	// Screen fields, set only on entity list pages.
	Screen   string
	Singular string
	Columns  []ui.Column

	// Boot is the window.rsamData globals blob.
	Boot template.JS

	Error string
}

// bootstrapData assembles the globals every admin client needs before it
// can call actions: the endpoint, a nonce, the user's capabilities, and
// the strings catalog with the configured currency symbol.
func (h *Handler) bootstrapData(ctx context.Context, sess *app.UserSession) gateway.Session {
	strings := i18n.Default()
	if settings, err := h.svc.GetSettings(ctx); err == nil && settings.CurrencySymbol != "" {
		strings.CurrencySymbol = settings.CurrencySymbol
	}
	return gateway.Session{
		AjaxURL: "/admin/action",
		Nonce:   h.nonces.issue(),
		Caps:    sess.Caps,
		Strings: strings,
	}
}

// buildPageData constructs the layout data from the request context.
func (h *Handler) buildPageData(r *http.Request, title, activeNav string) pageData {
	d := pageData{Title: title, ActiveNav: activeNav, StoreName: "My Store"}

	claims := authFromContext(r.Context())
	if claims == nil {
		return d
	}
	sess, err := h.svc.Session(r.Context(), claims.UserID)
	if err != nil {
		return d
	}
	d.Username = sess.Username
	d.Role = sess.Role

	if settings, err := h.svc.GetSettings(r.Context()); err == nil && settings.StoreName != "" {
		d.StoreName = settings.StoreName
	}

	boot := struct {
		gateway.Session
		Screen string `json:"screen"`
	}{Session: h.bootstrapData(r.Context(), sess), Screen: activeNav}
	if blob, err := json.Marshal(boot); err == nil {
		d.Boot = template.JS(blob)
	}
	return d
}

// ── Login page ────────────────────────────────────────────────────────────────

// loginPage handles GET /login. Redirects to the dashboard if already
// authenticated.
func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("auth_token"); err == nil {
		if _, err := h.parseToken(cookie.Value); err == nil {
			http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
			return
		}
	}
	h.pages.render(w, "login.html", pageData{Title: "Log In", StoreName: "My Store"})
}

// loginFormSubmit handles POST /login — form-based login.
func (h *Handler) loginFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.pages.render(w, "login.html", pageData{Title: "Log In", StoreName: "My Store", Error: "Invalid form submission."})
		return
	}

	session, err := h.svc.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		h.pages.render(w, "login.html", pageData{Title: "Log In", StoreName: "My Store", Error: "Invalid username or password."})
		return
	}

	signed, err := h.signToken(session.UserID, session.Role)
	if err != nil {
		h.pages.render(w, "login.html", pageData{Title: "Log In", StoreName: "My Store", Error: "Server error. Please try again."})
		return
	}

	setAuthCookie(w, signed, 3600)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// logoutPage handles POST /logout — clears cookie and redirects to login.
func (h *Handler) logoutPage(w http.ResponseWriter, r *http.Request) {
	setAuthCookie(w, "", -1)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ── Admin pages ───────────────────────────────────────────────────────────────

// dashboardPage handles GET /admin/dashboard.
func (h *Handler) dashboardPage(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, "dashboard.html", h.buildPageData(r, "Dashboard", "dashboard"))
}

// reportsPage handles GET /admin/reports.
func (h *Handler) reportsPage(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, "reports.html", h.buildPageData(r, "Reports", "reports"))
}

// settingsPage handles GET /admin/settings.
func (h *Handler) settingsPage(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, "settings.html", h.buildPageData(r, "Settings", "settings"))
}

// screenPage handles GET /admin/{screen} for the entity list screens.
// Unknown screens render the shell with an inline message instead of a
// bare 404 so the navigation stays usable.
func (h *Handler) screenPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "screen")
	desc, err := h.screens.Lookup(name)
	if err != nil {
		d := h.buildPageData(r, "Not Found", "")
		d.Error = err.Error()
		h.pages.render(w, "screen.html", d)
		return
	}

	d := h.buildPageData(r, desc.Singular+"s", desc.Screen)
	d.Screen = desc.Screen
	d.Singular = desc.Singular
	d.Columns = desc.Columns
	h.pages.render(w, "screen.html", d)
}
