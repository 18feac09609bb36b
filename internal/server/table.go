package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"webdemo/internal/models"
)

// Column pairs a message field with its table header label.
type Column struct {
	Key   string
	Label string
}

var tableColumns = []Column{
	{"id", "#"},
	{"text", "Message"},
	{"author", "Author"},
	{"category", "Category"},
	{"draft", "Draft"},
	{"create_time", "Create Time"},
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	messages, pagination, err := s.messagePage(page)
	if err != nil {
		s.Log.Error("message page failed", slog.String("err", err.Error()))
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "table", map[string]any{
		"Messages":   messages,
		"Pagination": pagination,
		"Titles":     tableColumns,
	})
}

func (s *Server) handleViewMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	msg, err := models.GetMessage(s.DB, id)
	if errors.Is(err, models.ErrNotFound) {
		fmt.Fprintf(w, "Could not view message %d as it does not exist. %s", id, backToTable)
		return
	}
	if err != nil {
		s.Log.Error("message lookup failed", slog.String("err", err.Error()))
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	fmt.Fprintf(w, "Viewing %d with text %q. %s", id, msg.Text, backToTable)
}

// handleEditMessage toggles the draft flag; it deliberately does not
// accept a value, so repeated calls oscillate it.
func (s *Server) handleEditMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	err := models.ToggleMessageDraft(s.DB, id)
	if errors.Is(err, models.ErrNotFound) {
		fmt.Fprintf(w, "Message %d did not exist and could therefore not be edited. %s", id, backToTable)
		return
	}
	if err != nil {
		s.Log.Error("draft toggle failed", slog.String("err", err.Error()))
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	fmt.Fprintf(w, "Message %d has been edited by toggling draft status. %s", id, backToTable)
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	id, ok := messageID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	err := models.DeleteMessage(s.DB, id)
	if errors.Is(err, models.ErrNotFound) {
		fmt.Fprintf(w, "Message %d did not exist and could therefore not be deleted. %s", id, backToTable)
		return
	}
	if err != nil {
		s.Log.Error("message delete failed", slog.String("err", err.Error()))
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	fmt.Fprintf(w, "Message %d has been deleted. %s", id, backToTable)
}

func (s *Server) handleLikeMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	fmt.Fprintf(w, "Liked the message %d. %s", id, backToTable)
}

func (s *Server) handleNewMessage(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "Here is the new message page. %s", backToTable)
}

const backToTable = `Return to <a href="/table">table</a>.`

// messageID parses the {id} url param. Non-numeric ids do not name a
// message route at all, so callers 404 when ok is false.
func messageID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}
