package sign

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leca/dropio-go/internal/param"
)

func TestCanonicalMatchesSpelledOutDigest(t *testing.T) {
	s := param.New()
	s.Add("version", "3.0")
	s.Add("api_key", "key123")
	s.Add("format", "xml")

	// Sorted keys, key=value concatenation with no separators, secret last.
	msg := "api_key=key123format=xmlversion=3.0sekrit"
	sum := sha1.Sum([]byte(msg))
	want := hex.EncodeToString(sum[:])

	assert.Equal(t, want, Canonical(s, "sekrit"))
}

func TestCanonicalIgnoresInsertionOrder(t *testing.T) {
	a := param.New()
	a.Add("b", "2")
	a.Add("a", "1")
	a.Add("c", "3")

	b := param.New()
	b.Add("c", "3")
	b.Add("a", "1")
	b.Add("b", "2")

	assert.Equal(t, Canonical(a, "secret"), Canonical(b, "secret"))
}

func TestCanonicalIsDeterministic(t *testing.T) {
	s := param.New()
	s.Add("api_key", "k")
	s.Add("name", "drop")

	first := Canonical(s, "secret")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Canonical(s, "secret"))
	}
}

func TestCanonicalSecretChangesDigest(t *testing.T) {
	s := param.New()
	s.Add("api_key", "k")

	assert.NotEqual(t, Canonical(s, "one"), Canonical(s, "two"))
}

func TestParamsWithEmptySecretIsNoOp(t *testing.T) {
	s := param.New()
	s.Add("api_key", "k")
	s.Add("name", "drop")
	before := s.Keys()

	Params(s, "", time.Now())

	assert.Equal(t, before, s.Keys())
	assert.False(t, s.Has("timestamp"))
	assert.False(t, s.Has("signature"))
}

func TestParamsAppendsTimestampThenSignature(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := param.New()
	s.Add("api_key", "k")
	Params(s, "secret", at)

	assert.Equal(t, []string{"api_key", "timestamp", "signature"}, s.Keys())
	assert.Equal(t, strconv.FormatInt(at.Add(Skew).Unix(), 10), s.Get("timestamp"))

	// The signature covers everything before it, timestamp included.
	unsigned := param.New()
	unsigned.Add("api_key", "k")
	unsigned.Add("timestamp", s.Get("timestamp"))
	assert.Equal(t, Canonical(unsigned, "secret"), s.Get("signature"))
}

func TestResource(t *testing.T) {
	expires := int64(1767225600)
	sum := sha1.Sum([]byte("1767225600+tok-abc+mydrop"))
	want := hex.EncodeToString(sum[:])

	got := Resource(expires, "tok-abc", "mydrop")
	require.Equal(t, want, got)
	assert.Equal(t, got, Resource(expires, "tok-abc", "mydrop"))
}
