// Package droptest runs an in-process fake Drop.io server for tests. It
// answers the documented XML/JSON response shapes, verifies request
// signatures with the real canonical scheme, and keeps all state in memory
// for the lifetime of one Server.
package droptest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	dropio "github.com/leca/dropio-go"
	"github.com/leca/dropio-go/internal/param"
	"github.com/leca/dropio-go/internal/sign"
)

// Server is one fake deployment. All exported methods are safe for
// concurrent use.
type Server struct {
	apiKey string
	secret string

	ts *httptest.Server

	mu    sync.Mutex
	drops map[string]*dropRecord
}

type dropRecord struct {
	name             string
	description      string
	adminEmail       string
	emailKey         string
	defaultView      string
	chatPassword     string
	expirationLength string
	guestsCanAdd     bool
	guestsCanComment bool
	guestsCanDelete  bool
	adminToken       string
	guestToken       string
	uploadCode       string
	expiresAt        time.Time

	assets     map[string]*assetRecord
	assetOrder []string

	subs      map[int]*subRecord
	subOrder  []int
	nextSubID int
}

type assetRecord struct {
	id          string
	name        string
	title       string
	description string
	typ         string
	url         string
	contents    string
	filesize    int64
	createdAt   time.Time
	content     []byte

	comments      map[int]*commentRecord
	commentOrder  []int
	nextCommentID int
}

type subRecord struct {
	id       int
	typ      string
	url      string
	email    string
	username string
	message  string
}

type commentRecord struct {
	id        int
	contents  string
	createdAt time.Time
}

// New starts a fake server that accepts the given API key. With a
// non-empty secret every API call must carry a valid timestamp and
// signature; with an empty secret unsigned calls are accepted.
func New(apiKey, secret string) *Server {
	s := &Server{
		apiKey: apiKey,
		secret: secret,
		drops:  make(map[string]*dropRecord),
	}
	s.ts = httptest.NewServer(s.router())
	return s
}

// Close shuts the server down.
func (s *Server) Close() { s.ts.Close() }

// URL returns the server's base URL.
func (s *Server) URL() string { return s.ts.URL }

// Config returns a client configuration pointing every endpoint at this
// server.
func (s *Server) Config() dropio.Config {
	return dropio.Config{
		APIKey:    s.apiKey,
		APISecret: s.secret,
		BaseURL:   s.ts.URL + "/",
		APIURL:    s.ts.URL + "/",
		UploadURL: s.ts.URL + "/upload",
	}
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Route("/drops", func(r chi.Router) {
		r.With(s.auth).Post("/", s.createDrop)
		r.With(s.auth).Get("/{drop}", s.getDrop)
		r.With(s.auth).Put("/{drop}", s.updateDrop)
		r.With(s.auth).Delete("/{drop}", s.deleteDrop)
		r.With(s.auth).Post("/{drop}/empty", s.emptyDrop)
		r.With(s.auth).Put("/{drop}/promote", s.promoteNick)
		r.With(s.auth).Get("/{drop}/upload_code", s.uploadCode)

		r.With(s.auth).Get("/{drop}/assets/", s.listAssets)
		r.With(s.auth).Post("/{drop}/assets/", s.createAsset)
		r.With(s.auth).Get("/{drop}/assets/{asset}", s.getAsset)
		r.With(s.auth).Put("/{drop}/assets/{asset}", s.updateAsset)
		r.With(s.auth).Delete("/{drop}/assets/{asset}", s.deleteAsset)
		r.With(s.auth).Post("/{drop}/assets/{asset}/copy", s.copyAsset)
		r.With(s.auth).Post("/{drop}/assets/{asset}/move", s.moveAsset)
		r.With(s.auth).Post("/{drop}/assets/{asset}/send_to", s.sendAsset)
		r.With(s.auth).Get("/{drop}/assets/{asset}/embed_code", s.embedCode)
		r.With(s.auth).Get("/{drop}/assets/{asset}/download/original", s.downloadOriginal)

		r.With(s.auth).Post("/{drop}/assets/{asset}/comments/", s.createComment)
		r.With(s.auth).Get("/{drop}/assets/{asset}/comments/", s.listComments)
		r.With(s.auth).Put("/{drop}/assets/{asset}/comments/{comment}", s.updateComment)
		r.With(s.auth).Delete("/{drop}/assets/{asset}/comments/{comment}", s.deleteComment)

		r.With(s.auth).Post("/{drop}/subscriptions/", s.createSubscription)
		r.With(s.auth).Get("/{drop}/subscriptions/", s.listSubscriptions)
		r.With(s.auth).Delete("/{drop}/subscriptions/{subscription}", s.deleteSubscription)
	})

	r.With(s.auth).Get("/accounts/drops/", s.listManagerDrops)
	r.With(s.auth).Post("/jobs/", s.convertJob)

	// The upload endpoint authenticates itself: its parameters arrive
	// inside the multipart body, and the handler counts body bytes to
	// enforce content-length exactness.
	r.Post("/upload", s.upload)

	return r
}

type contextKey string

const paramsKey contextKey = "params"

// auth parses the request's parameters, checks the API key and, when a
// secret is configured, the timestamp and signature, then stashes the
// parameter set for the handler.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		set, err := requestParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not parse request parameters")
			return
		}
		if !s.authorize(w, set) {
			return
		}
		next.ServeHTTP(w, r.WithContext(withParams(r.Context(), set)))
	})
}

// authorize validates the common parameters and the signature. It writes
// the error response itself and reports whether the request may proceed.
func (s *Server) authorize(w http.ResponseWriter, set *param.Set) bool {
	if set.Get("api_key") != s.apiKey {
		writeError(w, http.StatusForbidden, "invalid api key")
		return false
	}
	if s.secret == "" {
		return true
	}
	ts, err := strconv.ParseInt(set.Get("timestamp"), 10, 64)
	if err != nil || time.Now().Unix() > ts {
		writeError(w, http.StatusForbidden, "request expired")
		return false
	}
	unsigned := param.New()
	for _, k := range set.Keys() {
		if k == "signature" {
			continue
		}
		unsigned.Add(k, set.Get(k))
	}
	if sign.Canonical(unsigned, s.secret) != set.Get("signature") {
		writeError(w, http.StatusForbidden, "invalid signature")
		return false
	}
	return true
}

func withParams(ctx context.Context, set *param.Set) context.Context {
	return context.WithValue(ctx, paramsKey, set)
}

// params retrieves the parameter set stashed by the auth middleware.
func params(r *http.Request) *param.Set {
	if set, ok := r.Context().Value(paramsKey).(*param.Set); ok {
		return set
	}
	return param.New()
}

// requestParams collects the call's parameters from wherever the verb and
// content type put them: query string, urlencoded body or JSON body.
func requestParams(r *http.Request) (*param.Set, error) {
	set := param.New()
	switch {
	case r.Method == http.MethodGet || r.Method == http.MethodDelete:
		for k, vs := range r.URL.Query() {
			if len(vs) > 0 {
				set.Add(k, vs[0])
			}
		}
	case r.Header.Get("Content-Type") == "application/json":
		var obj map[string]any
		if err := json.NewDecoder(r.Body).Decode(&obj); err != nil {
			return nil, err
		}
		for k, v := range obj {
			if str, ok := v.(string); ok {
				set.Add(k, str)
			} else {
				set.AddAny(k, v)
			}
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		for k, vs := range r.PostForm {
			if len(vs) > 0 {
				set.Add(k, vs[0])
			}
		}
	}
	return set, nil
}
