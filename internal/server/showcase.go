package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"webdemo/internal/forms"
	"webdemo/internal/models"
)

const themeCookie = "theme"

// themeFrom reads the active bootswatch theme for this browser;
// "default" means no theme stylesheet.
func themeFrom(r *http.Request) string {
	if cookie, err := r.Cookie(themeCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return "default"
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "form", map[string]any{"Form": &forms.HelloForm{}})

	case http.MethodPost:
		if !s.checkCSRF(w, r) {
			return
		}
		form := forms.ParseHello(r)
		if errs := forms.Validate(form); errs != nil {
			s.render(w, r, "form", map[string]any{"Form": form, "Errors": errs})
			return
		}
		s.addFlash(w, r, "default", "Form validated!")
		http.Redirect(w, r, "/", http.StatusSeeOther)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "nav", nil)
}

func (s *Server) handleBootswatch(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		form := &forms.BootswatchForm{Theme: themeFrom(r)}
		s.render(w, r, "bootswatch", map[string]any{"Form": form, "Themes": forms.Themes})

	case http.MethodPost:
		if !s.checkCSRF(w, r) {
			return
		}
		form := forms.ParseBootswatch(r)
		if errs := forms.Validate(form); errs != nil {
			s.render(w, r, "bootswatch", map[string]any{"Form": form, "Themes": forms.Themes, "Errors": errs})
			return
		}
		// theme lives in a per-browser cookie, not process state,
		// so concurrent requests cannot observe each other's choice
		http.SetCookie(w, &http.Cookie{Name: themeCookie, Value: form.Theme, Path: "/"})
		s.addFlash(w, r, "default", fmt.Sprintf("Render style has been set to %s.", form.Theme))
		http.Redirect(w, r, "/bootswatch", http.StatusSeeOther)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handlePagination(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	messages, pagination, err := s.messagePage(page)
	if err != nil {
		s.Log.Error("message page failed", slog.String("err", err.Error()))
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "pagination", map[string]any{
		"Messages":   messages,
		"Pagination": pagination,
	})
}

func (s *Server) handleFlash(w http.ResponseWriter, r *http.Request) {
	demo := []Flash{
		{Category: "default", Message: "A simple default alert—check it out!"},
		{Category: "primary", Message: "A simple primary alert—check it out!"},
		{Category: "secondary", Message: "A simple secondary alert—check it out!"},
		{Category: "success", Message: "A simple success alert—check it out!"},
		{Category: "danger", Message: "A simple danger alert—check it out!"},
		{Category: "warning", Message: "A simple warning alert—check it out!"},
		{Category: "info", Message: "A simple info alert—check it out!"},
		{Category: "light", Message: "A simple light alert—check it out!"},
		{Category: "dark", Message: "A simple dark alert—check it out!"},
		{Category: "success", Message: `A simple success alert with <a href="#" class="alert-link">an example link</a>. Give it a click if you like.`, Safe: true},
	}
	s.render(w, r, "flash", map[string]any{"Flashes": demo})
}

func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "icon", nil)
}

func (s *Server) handleIcons(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "icons", nil)
}

func (s *Server) messagePage(page int) ([]models.Message, Pagination, error) {
	total, err := models.CountMessages(s.DB)
	if err != nil {
		return nil, Pagination{}, err
	}
	messages, err := models.ListMessages(s.DB, page, s.Cfg.Pages.PerPage)
	if err != nil {
		return nil, Pagination{}, err
	}
	return messages, paginate(page, s.Cfg.Pages.PerPage, total), nil
}
