package droptest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) createSubscription(w http.ResponseWriter, r *http.Request) {
	p := params(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drops[chi.URLParam(r, "drop")]
	if !ok {
		writeError(w, http.StatusNotFound, "drop not found")
		return
	}

	typ := p.Get("type")
	switch typ {
	case "pingback":
		if p.Get("url") == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}
	case "email":
		if p.Get("email") == "" {
			writeError(w, http.StatusBadRequest, "email is required")
			return
		}
	case "twitter":
		if p.Get("username") == "" || p.Get("password") == "" {
			writeError(w, http.StatusBadRequest, "twitter credentials are required")
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "unknown subscription type")
		return
	}

	d.nextSubID++
	sub := &subRecord{
		id:       d.nextSubID,
		typ:      typ,
		url:      p.Get("url"),
		email:    p.Get("email"),
		username: p.Get("username"),
		message:  p.Get("message"),
	}
	d.subs[sub.id] = sub
	d.subOrder = append(d.subOrder, sub.id)
	writeXML(w, http.StatusOK, sub.xml())
}

func (s *Server) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drops[chi.URLParam(r, "drop")]
	if !ok {
		writeError(w, http.StatusNotFound, "drop not found")
		return
	}
	doc := "<subscriptions>"
	for _, id := range d.subOrder {
		doc += d.subs[id].xml()
	}
	doc += "</subscriptions>"
	writeXML(w, http.StatusOK, doc)
}

func (s *Server) deleteSubscription(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drops[chi.URLParam(r, "drop")]
	if !ok {
		writeError(w, http.StatusNotFound, "drop not found")
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "subscription"))
	if err != nil {
		writeError(w, http.StatusNotFound, "subscription not found")
		return
	}
	if _, ok := d.subs[id]; !ok {
		writeError(w, http.StatusNotFound, "subscription not found")
		return
	}
	delete(d.subs, id)
	for i, sid := range d.subOrder {
		if sid == id {
			d.subOrder = append(d.subOrder[:i], d.subOrder[i+1:]...)
			break
		}
	}
	writeOK(w, "subscription deleted")
}
