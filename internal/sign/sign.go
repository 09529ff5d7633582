// Package sign implements the two request-authentication modes of the
// Drop.io API: canonical full-parameter signing for API calls, and the
// narrower entity-scoped signature used only for shareable URLs. The two
// modes are deliberately separate functions; they are different protocols.
package sign

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/leca/dropio-go/internal/param"
)

// Skew is added to the signing instant to form the timestamp parameter.
// Requests are valid until this future instant, which absorbs clock drift
// between client and server.
const Skew = 10 * time.Minute

// Params signs the parameter set in place. With an empty secret it is a
// no-op: the set stays byte-for-byte unchanged and the request goes out
// unsigned. Otherwise it appends a timestamp parameter (at+Skew as Unix
// seconds) and a signature parameter computed by Canonical. Signing must be
// the last mutation before transport; any later addition makes the
// signature stale.
func Params(s *param.Set, secret string, at time.Time) {
	if secret == "" {
		return
	}
	s.Add("timestamp", strconv.FormatInt(at.Add(Skew).Unix(), 10))
	s.Add("signature", Canonical(s, secret))
}

// Canonical computes the signature over the current contents of the set:
// keys sorted with an ordinal string sort, concatenated as key=value pairs
// with no separators, the raw secret appended, SHA-1 over the whole byte
// string, lowercase hex digest.
func Canonical(s *param.Set, secret string) string {
	keys := s.Keys()
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s.Get(k))
	}
	b.WriteString(secret)

	sum := sha1.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Resource computes the entity-scoped signature for pre-signed drop and
// asset URLs: SHA-1 over "expires+token+dropName", lowercase hex. It covers
// only those three values, never the full parameter set, and is not valid
// for API calls.
func Resource(expires int64, token, dropName string) string {
	msg := strconv.FormatInt(expires, 10) + "+" + token + "+" + dropName
	sum := sha1.Sum([]byte(msg))
	return hex.EncodeToString(sum[:])
}
