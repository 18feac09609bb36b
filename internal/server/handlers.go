package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"webdemo/internal/forms"
	"webdemo/internal/models"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "index", nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderAuth(w, r, "Login", "Login", &forms.LoginForm{}, nil)

	case http.MethodPost:
		if !s.checkCSRF(w, r) {
			return
		}
		form := forms.ParseLogin(r)
		if errs := forms.Validate(form); errs != nil {
			s.renderAuth(w, r, "Login", "Login", form, errs)
			return
		}
		user, err := models.GetUserByEmail(s.DB, form.Email)
		if errors.Is(err, models.ErrNotFound) {
			// same message as a wrong password so account
			// existence is not leaked
			s.addFlash(w, r, "danger", "Invalid username or password!")
			http.Redirect(w, r, "/login/", http.StatusSeeOther)
			return
		}
		if err != nil {
			s.Log.Error("user lookup failed", slog.String("err", err.Error()))
			s.addFlash(w, r, "danger", "Something went wrong!")
			http.Redirect(w, r, "/login/", http.StatusSeeOther)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
			s.addFlash(w, r, "danger", "Invalid username or password!")
			http.Redirect(w, r, "/login/", http.StatusSeeOther)
			return
		}
		sid := uuid.NewString()
		expires := time.Now().Add(s.Cfg.Sessions.TTL)
		if err := models.CreateSession(s.DB, user.ID, sid, expires); err != nil {
			s.Log.Error("session create failed", slog.String("err", err.Error()))
			s.addFlash(w, r, "danger", "Something went wrong!")
			http.Redirect(w, r, "/login/", http.StatusSeeOther)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     s.Cfg.Sessions.CookieName,
			Value:    sid,
			Path:     "/",
			Expires:  expires,
			HttpOnly: true,
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderAuth(w, r, "Register", "Register account", &forms.RegisterForm{}, nil)

	case http.MethodPost:
		if !s.checkCSRF(w, r) {
			return
		}
		form := forms.ParseRegister(r)
		if errs := forms.Validate(form); errs != nil {
			s.renderAuth(w, r, "Register", "Register account", form, errs)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
		if err != nil {
			s.renderAuthFlash(w, r, form, Flash{Category: "danger", Message: "Something went wrong!"})
			return
		}
		if err := models.CreateUser(s.DB, form.Username, form.Email, string(hash)); err != nil {
			s.Log.Warn("register failed", slog.String("err", err.Error()))
			// re-render the filled form so the submission is not lost
			s.renderAuthFlash(w, r, form, storeFlash(err))
			return
		}
		s.addFlash(w, r, "success", "Account successfully created.")
		http.Redirect(w, r, "/login/", http.StatusSeeOther)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ *models.User) {
	if cookie, err := r.Cookie(s.Cfg.Sessions.CookieName); err == nil {
		if err := models.RevokeSession(s.DB, cookie.Value); err != nil {
			s.Log.Warn("session revoke failed", slog.String("err", err.Error()))
		}
		http.SetCookie(w, &http.Cookie{Name: s.Cfg.Sessions.CookieName, Path: "/", MaxAge: -1})
	}
	http.Redirect(w, r, "/login/", http.StatusSeeOther)
}

func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request, user *models.User) {
	s.render(w, r, "collections", map[string]any{"User": user})
}

func (s *Server) renderAuth(w http.ResponseWriter, r *http.Request, title, btnAction string, form any, errs map[string]string) {
	s.render(w, r, "auth", map[string]any{
		"Title":     title,
		"BtnAction": btnAction,
		"Form":      form,
		"Errors":    errs,
	})
}

func (s *Server) renderAuthFlash(w http.ResponseWriter, r *http.Request, form *forms.RegisterForm, flash Flash) {
	s.render(w, r, "auth", map[string]any{
		"Title":     "Register",
		"BtnAction": "Register account",
		"Form":      form,
		"Flashes":   []Flash{flash},
	})
}

// storeFlash is the single translation step from a store failure to a
// user-facing flash. Raw error text never reaches the page.
func storeFlash(err error) Flash {
	switch models.ErrKind(err) {
	case models.KindConflict:
		return Flash{Category: "warning", Message: "User already exists!"}
	case models.KindMalformed:
		return Flash{Category: "warning", Message: "Invalid entry."}
	case models.KindConnectivity:
		return Flash{Category: "danger", Message: "Error connecting to the database."}
	default:
		return Flash{Category: "danger", Message: "Something went wrong!"}
	}
}
