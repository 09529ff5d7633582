package droptest

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leca/dropio-go/internal/param"
)

// countingReader tracks how many body bytes the handler actually consumed.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// upload receives the multipart file upload. Clients must declare the
// exact content length; chunked requests are rejected, and the handler
// verifies the declared length against the bytes it reads. The request's
// parameters travel as form fields inside the body, so authentication
// happens here rather than in the auth middleware.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength < 0 {
		writeError(w, http.StatusBadRequest, "content length is required")
		return
	}
	_, mediaParams, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaParams["boundary"] == "" {
		writeError(w, http.StatusBadRequest, "malformed multipart request")
		return
	}

	body := &countingReader{r: r.Body}
	mr := multipart.NewReader(body, mediaParams["boundary"])

	set := param.New()
	var fileName string
	var content []byte
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "malformed multipart request")
			return
		}
		data, err := io.ReadAll(part)
		if err != nil {
			writeError(w, http.StatusBadRequest, "malformed multipart request")
			return
		}
		if part.FileName() != "" {
			fileName = part.FileName()
			content = data
		} else {
			set.Add(part.FormName(), string(data))
		}
	}

	// Drain the epilogue so the count covers the whole body.
	if _, err := io.Copy(io.Discard, body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart request")
		return
	}
	if body.n != r.ContentLength {
		writeError(w, http.StatusBadRequest, "content length mismatch")
		return
	}

	if !s.authorize(w, set) {
		return
	}
	if fileName == "" {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drops[set.Get("drop_name")]
	if !ok {
		writeError(w, http.StatusNotFound, "drop not found")
		return
	}

	a := &assetRecord{
		id:          uuid.NewString(),
		name:        fileName,
		title:       fileName,
		description: set.Get("description"),
		typ:         assetTypeFor(fileName),
		filesize:    int64(len(content)),
		createdAt:   time.Now(),
		content:     content,
		comments:    make(map[int]*commentRecord),
	}
	d.assets[a.id] = a
	d.assetOrder = append(d.assetOrder, a.id)
	writeXML(w, http.StatusOK, a.xml())
}

// assetTypeFor buckets an uploaded file by its extension's media type.
func assetTypeFor(fileName string) string {
	t := mime.TypeByExtension(filepath.Ext(fileName))
	switch {
	case strings.HasPrefix(t, "image/"):
		return "image"
	case strings.HasPrefix(t, "audio/"):
		return "audio"
	case strings.HasPrefix(t, "video/"):
		return "movie"
	case strings.HasPrefix(t, "text/"), strings.HasPrefix(t, "application/pdf"):
		return "document"
	default:
		return "other"
	}
}
