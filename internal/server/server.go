package server

import (
	"database/sql"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"webdemo/internal/config"
	"webdemo/internal/models"
)

type Server struct {
	DB  *sql.DB
	Log *slog.Logger
	Cfg *config.Config

	tmpl    map[string]*template.Template
	handler http.Handler
}

func New(conn *sql.DB, log *slog.Logger, cfg *config.Config) (*Server, error) {
	funcs := template.FuncMap{
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}
	templates := map[string]*template.Template{}
	layout := filepath.Join(cfg.TemplateDir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(cfg.TemplateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.New("layout.html").Funcs(funcs).ParseFiles(layout, page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}
	s := &Server{DB: conn, Log: log, Cfg: cfg, tmpl: templates}
	s.handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	// the original app ignores trailing slashes on the auth routes
	r.HandleFunc("/login", s.handleLogin)
	r.HandleFunc("/login/", s.handleLogin)
	r.HandleFunc("/register", s.handleRegister)
	r.HandleFunc("/register/", s.handleRegister)
	r.Get("/logout", s.requireAuth(s.handleLogout))
	r.Get("/collections", s.requireAuth(s.handleCollections))

	r.HandleFunc("/form", s.handleForm)
	r.HandleFunc("/nav", s.handleNav)
	r.HandleFunc("/bootswatch", s.handleBootswatch)
	r.HandleFunc("/pagination", s.handlePagination)
	r.HandleFunc("/flash", s.handleFlash)

	r.Get("/table", s.handleTable)
	r.Get("/table/new-message", s.handleNewMessage)
	r.Get("/table/{id}/view", s.handleViewMessage)
	r.Get("/table/{id}/edit", s.handleEditMessage)
	r.Post("/table/{id}/delete", s.handleDeleteMessage)
	r.Get("/table/{id}/like", s.handleLikeMessage)

	r.Get("/icon", s.handleIcon)
	r.Get("/icons", s.handleIcons)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.Cfg.StaticDir))))
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// render executes the named page inside the layout, merging in the
// request-scoped context every page needs: the current user, drained
// flash messages, the active theme and the csrf token.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	t, ok := s.tmpl[name]
	if !ok {
		s.Log.Error("template not found", slog.String("name", name))
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["User"]; !ok {
		data["User"] = s.currentUser(w, r)
	}
	flashes := s.popFlashes(w, r)
	if extra, ok := data["Flashes"].([]Flash); ok {
		flashes = append(flashes, extra...)
	}
	data["Flashes"] = flashes
	data["Theme"] = themeFrom(r)
	data["CSRF"] = s.ensureCSRF(w, r)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		s.Log.Error("render failed", slog.String("template", name), slog.String("err", err.Error()))
	}
}

// requireAuth gates a route on a live session; unauthenticated
// requests are sent to the login page.
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.currentUser(w, r)
		if user == nil {
			http.Redirect(w, r, "/login/", http.StatusSeeOther)
			return
		}
		next(w, r, user)
	}
}

// currentUser resolves the session cookie to a user. A valid session
// has its expiry slid forward and the cookie re-issued to match, so
// the window is measured from the last request on both sides.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) *models.User {
	cookie, err := r.Cookie(s.Cfg.Sessions.CookieName)
	if err != nil {
		return nil
	}
	sess, err := models.GetSession(s.DB, cookie.Value)
	if err != nil || sess.RevokedAt != nil || sess.ExpiresAt.Before(time.Now()) {
		return nil
	}
	expires := time.Now().Add(s.Cfg.Sessions.TTL)
	if err := models.TouchSession(s.DB, sess.ID, expires); err != nil {
		s.Log.Warn("session refresh failed", slog.String("err", err.Error()))
	} else {
		http.SetCookie(w, &http.Cookie{
			Name:     s.Cfg.Sessions.CookieName,
			Value:    sess.ID,
			Path:     "/",
			Expires:  expires,
			HttpOnly: true,
		})
	}
	user, err := models.GetUserByID(s.DB, sess.UserID)
	if err != nil {
		return nil
	}
	return user
}
