package droptest

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// lookupAsset resolves the drop and asset named by the route. The caller
// must hold s.mu. A nil asset means the error response was already written.
func (s *Server) lookupAsset(w http.ResponseWriter, r *http.Request) (*dropRecord, *assetRecord) {
	d, ok := s.drops[chi.URLParam(r, "drop")]
	if !ok {
		writeError(w, http.StatusNotFound, "drop not found")
		return nil, nil
	}
	a, ok := d.assets[chi.URLParam(r, "asset")]
	if !ok {
		writeError(w, http.StatusNotFound, "asset not found")
		return nil, nil
	}
	return d, a
}

func (s *Server) getAsset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, a := s.lookupAsset(w, r); a != nil {
		writeXML(w, http.StatusOK, a.xml())
	}
}

func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	p := params(r)
	page, _ := strconv.Atoi(p.Get("page"))
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drops[chi.URLParam(r, "drop")]
	if !ok {
		writeError(w, http.StatusNotFound, "drop not found")
		return
	}

	ids := append([]string(nil), d.assetOrder...)
	if p.Get("order") == "newest" {
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	}
	const perPage = 30
	start := (page - 1) * perPage
	if start > len(ids) {
		start = len(ids)
	}
	end := start + perPage
	if end > len(ids) {
		end = len(ids)
	}

	doc := "<assets>"
	for _, id := range ids[start:end] {
		doc += d.assets[id].xml()
	}
	doc += "</assets>"
	writeXML(w, http.StatusOK, doc)
}

// createAsset handles the non-file asset creations: links, notes and
// server-side fetches (file_url).
func (s *Server) createAsset(w http.ResponseWriter, r *http.Request) {
	p := params(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drops[chi.URLParam(r, "drop")]
	if !ok {
		writeError(w, http.StatusNotFound, "drop not found")
		return
	}

	a := &assetRecord{
		id:          uuid.NewString(),
		title:       p.Get("title"),
		description: p.Get("description"),
		createdAt:   time.Now(),
		comments:    make(map[int]*commentRecord),
	}
	switch {
	case p.Has("contents"):
		a.typ = "note"
		a.contents = p.Get("contents")
	case p.Has("url"):
		a.typ = "link"
		a.url = p.Get("url")
	case p.Has("file_url"):
		// The real service fetches the URL and stores a file-typed asset.
		// The fake never fetches, so the asset stays a link to the source.
		a.typ = "link"
		a.url = p.Get("file_url")
	default:
		writeError(w, http.StatusBadRequest, "nothing to create an asset from")
		return
	}
	a.name = a.title
	if a.name == "" {
		a.name = a.id
	}

	d.assets[a.id] = a
	d.assetOrder = append(d.assetOrder, a.id)
	writeXML(w, http.StatusOK, a.xml())
}

func (s *Server) updateAsset(w http.ResponseWriter, r *http.Request) {
	p := params(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, a := s.lookupAsset(w, r)
	if a == nil {
		return
	}
	if p.Has("name") {
		a.name = p.Get("name")
	}
	if p.Has("title") {
		a.title = p.Get("title")
	}
	if p.Has("description") {
		a.description = p.Get("description")
	}
	if p.Has("url") && a.typ == "link" {
		a.url = p.Get("url")
	}
	if p.Has("contents") && a.typ == "note" {
		a.contents = p.Get("contents")
	}
	writeXML(w, http.StatusOK, a.xml())
}

func (s *Server) deleteAsset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, a := s.lookupAsset(w, r)
	if a == nil {
		return
	}
	delete(d.assets, a.id)
	for i, id := range d.assetOrder {
		if id == a.id {
			d.assetOrder = append(d.assetOrder[:i], d.assetOrder[i+1:]...)
			break
		}
	}
	writeOK(w, "asset deleted")
}

func (s *Server) copyAsset(w http.ResponseWriter, r *http.Request) {
	s.transferAsset(w, r, false)
}

func (s *Server) moveAsset(w http.ResponseWriter, r *http.Request) {
	s.transferAsset(w, r, true)
}

func (s *Server) transferAsset(w http.ResponseWriter, r *http.Request, move bool) {
	p := params(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	d, a := s.lookupAsset(w, r)
	if a == nil {
		return
	}
	target, ok := s.drops[p.Get("drop_name")]
	if !ok {
		writeError(w, http.StatusNotFound, "target drop not found")
		return
	}

	dup := *a
	dup.id = uuid.NewString()
	dup.comments = make(map[int]*commentRecord)
	dup.commentOrder = nil
	target.assets[dup.id] = &dup
	target.assetOrder = append(target.assetOrder, dup.id)

	if move {
		delete(d.assets, a.id)
		for i, id := range d.assetOrder {
			if id == a.id {
				d.assetOrder = append(d.assetOrder[:i], d.assetOrder[i+1:]...)
				break
			}
		}
	}
	writeOK(w, "asset transferred")
}

func (s *Server) sendAsset(w http.ResponseWriter, r *http.Request) {
	p := params(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, a := s.lookupAsset(w, r); a == nil {
		return
	}
	switch p.Get("medium") {
	case "email", "fax", "drop":
		writeOK(w, "asset sent")
	default:
		writeError(w, http.StatusBadRequest, "unknown send medium")
	}
}

func (s *Server) embedCode(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, a := s.lookupAsset(w, r)
	if a == nil {
		return
	}
	writeXML(w, http.StatusOK,
		"<response><embed_code>&lt;iframe src=&quot;http://drop.example/e/"+a.id+"&quot;&gt;&lt;/iframe&gt;</embed_code></response>")
}

func (s *Server) downloadOriginal(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, a := s.lookupAsset(w, r)
	if a == nil {
		s.mu.Unlock()
		return
	}
	content := a.content
	name := a.name
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, bytes.NewReader(content)); err != nil {
		log.Printf("downloadOriginal: failed to stream response: %v", err)
	}
}
