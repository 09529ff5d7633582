package dropio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leca/dropio-go/internal/sign"
)

// testClient returns a client pointed at the handler with a fixed clock.
func testClient(t *testing.T, secret string, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c := New(Config{
		APIKey:    "key123",
		APISecret: secret,
		BaseURL:   ts.URL + "/",
		APIURL:    ts.URL + "/",
		UploadURL: ts.URL + "/upload",
	})
	c.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return c, ts
}

func TestCallInjectsCommonParamsAndSigns(t *testing.T) {
	var got url.Values
	c, _ := testClient(t, "sekrit", func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte("<drop><name>mydrop</name></drop>"))
	})

	_, err := c.FindDrop(context.Background(), "mydrop")
	require.NoError(t, err)

	assert.Equal(t, "key123", got.Get("api_key"))
	assert.Equal(t, "xml", got.Get("format"))
	assert.Equal(t, "3.0", got.Get("version"))

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	wantTS := strconv.FormatInt(at.Add(sign.Skew).Unix(), 10)
	assert.Equal(t, wantTS, got.Get("timestamp"))
	assert.Len(t, got.Get("signature"), 40)
}

func TestCallWithoutSecretSendsNoSignature(t *testing.T) {
	var got url.Values
	c, _ := testClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte("<drop><name>mydrop</name></drop>"))
	})

	_, err := c.FindDrop(context.Background(), "mydrop")
	require.NoError(t, err)

	assert.False(t, got.Has("timestamp"))
	assert.False(t, got.Has("signature"))
}

func TestForbiddenBecomesNotAuthorized(t *testing.T) {
	c, _ := testClient(t, "s", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("<response><message>nope</message></response>"))
	})

	_, err := c.FindDrop(context.Background(), "mydrop")
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, NotAuthorized, serr.Kind)
	assert.Equal(t, http.StatusForbidden, serr.StatusCode)
	assert.Equal(t, "nope", serr.Message)
}

func TestNotFound(t *testing.T) {
	c, _ := testClient(t, "s", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<response><message>drop not found</message></response>"))
	})

	_, err := c.FindDrop(context.Background(), "mydrop")
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, NotFound, serr.Kind)
	assert.Equal(t, "drop not found", serr.Message)
}

func TestBadRequest(t *testing.T) {
	c, _ := testClient(t, "s", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("<response><message>name taken</message></response>"))
	})

	_, err := c.CreateDrop(context.Background(), CreateDropRequest{Name: "taken"})
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, BadRequest, serr.Kind)
	assert.Equal(t, "name taken", serr.Message)
}

func TestServerErrorGetsGenericMessage(t *testing.T) {
	c, _ := testClient(t, "s", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<response><message>stack trace here</message></response>"))
	})

	_, err := c.FindDrop(context.Background(), "mydrop")
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ServerError, serr.Kind)
	assert.NotContains(t, serr.Message, "stack trace")
}

func TestUnlistedStatusIsNotServiceError(t *testing.T) {
	c, _ := testClient(t, "s", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	_, err := c.FindDrop(context.Background(), "mydrop")
	require.Error(t, err)
	var serr *Error
	assert.False(t, errors.As(err, &serr))
}

func TestMalformedErrorBodyFallsBack(t *testing.T) {
	c, _ := testClient(t, "s", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("not xml at all"))
	})

	_, err := c.FindDrop(context.Background(), "mydrop")
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "there was a problem with your request", serr.Message)
}

func TestWrongRootElement(t *testing.T) {
	c, _ := testClient(t, "s", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<asset><id>a1</id></asset>"))
	})

	_, err := c.FindDrop(context.Background(), "mydrop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response element")
}
