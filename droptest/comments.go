package droptest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	p := params(r)
	if p.Get("contents") == "" {
		writeError(w, http.StatusBadRequest, "contents is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, a := s.lookupAsset(w, r)
	if a == nil {
		return
	}
	a.nextCommentID++
	c := &commentRecord{
		id:        a.nextCommentID,
		contents:  p.Get("contents"),
		createdAt: time.Now(),
	}
	a.comments[c.id] = c
	a.commentOrder = append(a.commentOrder, c.id)
	writeXML(w, http.StatusOK, c.xml())
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, a := s.lookupAsset(w, r)
	if a == nil {
		return
	}
	doc := "<comments>"
	for _, id := range a.commentOrder {
		doc += a.comments[id].xml()
	}
	doc += "</comments>"
	writeXML(w, http.StatusOK, doc)
}

// lookupComment resolves the comment named by the route on top of
// lookupAsset. The caller must hold s.mu.
func (s *Server) lookupComment(w http.ResponseWriter, r *http.Request) (*assetRecord, *commentRecord) {
	_, a := s.lookupAsset(w, r)
	if a == nil {
		return nil, nil
	}
	id, err := strconv.Atoi(chi.URLParam(r, "comment"))
	if err != nil {
		writeError(w, http.StatusNotFound, "comment not found")
		return nil, nil
	}
	c, ok := a.comments[id]
	if !ok {
		writeError(w, http.StatusNotFound, "comment not found")
		return nil, nil
	}
	return a, c
}

func (s *Server) updateComment(w http.ResponseWriter, r *http.Request) {
	p := params(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, c := s.lookupComment(w, r)
	if c == nil {
		return
	}
	if p.Has("contents") {
		c.contents = p.Get("contents")
	}
	writeXML(w, http.StatusOK, c.xml())
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, c := s.lookupComment(w, r)
	if c == nil {
		return
	}
	delete(a.comments, c.id)
	for i, id := range a.commentOrder {
		if id == c.id {
			a.commentOrder = append(a.commentOrder[:i], a.commentOrder[i+1:]...)
			break
		}
	}
	writeOK(w, "comment deleted")
}
