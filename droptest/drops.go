package droptest

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) createDrop(w http.ResponseWriter, r *http.Request) {
	p := params(r)

	name := p.Get("name")
	if name == "" {
		name = "drop-" + uuid.NewString()[:8]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.drops[name]; exists {
		writeError(w, http.StatusBadRequest, "drop name already taken")
		return
	}

	d := &dropRecord{
		name:             name,
		description:      p.Get("description"),
		chatPassword:     p.Get("chat_password"),
		expirationLength: p.Get("expiration_length"),
		guestsCanAdd:     p.Get("guests_can_add") == "true",
		guestsCanComment: p.Get("guests_can_comment") == "true",
		guestsCanDelete:  p.Get("guests_can_delete") == "true",
		adminToken:       uuid.NewString(),
		guestToken:       uuid.NewString(),
		uploadCode:       uuid.NewString()[:8],
		expiresAt:        time.Now().Add(365 * 24 * time.Hour),
		assets:           make(map[string]*assetRecord),
		subs:             make(map[int]*subRecord),
	}
	if d.expirationLength == "" {
		d.expirationLength = "1_YEAR_FROM_LAST_VIEW"
	}
	s.drops[name] = d

	writeXML(w, http.StatusOK, d.xml())
}

func (s *Server) getDrop(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drops[chi.URLParam(r, "drop")]
	if !ok {
		writeError(w, http.StatusNotFound, "drop not found")
		return
	}
	writeXML(w, http.StatusOK, d.xml())
}

func (s *Server) updateDrop(w http.ResponseWriter, r *http.Request) {
	p := params(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drops[chi.URLParam(r, "drop")]
	if !ok {
		writeError(w, http.StatusNotFound, "drop not found")
		return
	}

	// Partial semantics: absent parameters leave the field untouched.
	if p.Has("description") {
		d.description = p.Get("description")
	}
	if p.Has("admin_email") {
		d.adminEmail = p.Get("admin_email")
	}
	if p.Has("email_key") {
		d.emailKey = p.Get("email_key")
	}
	if p.Has("default_view") {
		d.defaultView = p.Get("default_view")
	}
	if p.Has("chat_password") {
		d.chatPassword = p.Get("chat_password")
	}
	if p.Has("expiration_length") {
		d.expirationLength = p.Get("expiration_length")
	}
	if p.Has("guests_can_add") {
		d.guestsCanAdd = p.Get("guests_can_add") == "true"
	}
	if p.Has("guests_can_comment") {
		d.guestsCanComment = p.Get("guests_can_comment") == "true"
	}
	if p.Has("guests_can_delete") {
		d.guestsCanDelete = p.Get("guests_can_delete") == "true"
	}

	writeXML(w, http.StatusOK, d.xml())
}

func (s *Server) deleteDrop(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := chi.URLParam(r, "drop")
	if _, ok := s.drops[name]; !ok {
		writeError(w, http.StatusNotFound, "drop not found")
		return
	}
	delete(s.drops, name)
	writeOK(w, "drop destroyed")
}

func (s *Server) emptyDrop(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drops[chi.URLParam(r, "drop")]
	if !ok {
		writeError(w, http.StatusNotFound, "drop not found")
		return
	}
	d.assets = make(map[string]*assetRecord)
	d.assetOrder = nil
	writeOK(w, "drop emptied")
}

func (s *Server) promoteNick(w http.ResponseWriter, r *http.Request) {
	if params(r).Get("nick") == "" {
		writeError(w, http.StatusBadRequest, "nick is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drops[chi.URLParam(r, "drop")]; !ok {
		writeError(w, http.StatusNotFound, "drop not found")
		return
	}
	writeOK(w, "nick promoted")
}

func (s *Server) uploadCode(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drops[chi.URLParam(r, "drop")]
	if !ok {
		writeError(w, http.StatusNotFound, "drop not found")
		return
	}
	writeXML(w, http.StatusOK, "<response><upload_code>"+d.uploadCode+"</upload_code></response>")
}

func (s *Server) listManagerDrops(w http.ResponseWriter, r *http.Request) {
	p := params(r)
	if p.Get("manager_api_token") == "" {
		writeError(w, http.StatusForbidden, "manager api token required")
		return
	}
	page, _ := strconv.Atoi(p.Get("page"))
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.drops))
	for name := range s.drops {
		names = append(names, name)
	}
	sort.Strings(names)
	const perPage = 30
	start := (page - 1) * perPage
	if start > len(names) {
		start = len(names)
	}
	end := start + perPage
	if end > len(names) {
		end = len(names)
	}

	doc := "<drops>"
	for _, name := range names[start:end] {
		doc += s.drops[name].xml()
	}
	doc += "</drops>"
	writeXML(w, http.StatusOK, doc)
}
