package droptest

import (
	"encoding/xml"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// The fake server writes its XML by hand; the response shapes are small
// and partly dynamic (typed asset fields, role bags), so a builder beats a
// forest of tagged structs.

// el appends one escaped element.
func el(b *strings.Builder, name, value string) {
	b.WriteString("<" + name + ">")
	xml.EscapeText(b, []byte(value))
	b.WriteString("</" + name + ">")
}

func elInt(b *strings.Builder, name string, v int) {
	el(b, name, strconv.Itoa(v))
}

func elInt64(b *strings.Builder, name string, v int64) {
	el(b, name, strconv.FormatInt(v, 10))
}

func elBool(b *strings.Builder, name string, v bool) {
	el(b, name, strconv.FormatBool(v))
}

// elTime writes a timestamp the way the real service does, with its
// non-standard trailing UTC marker.
func elTime(b *strings.Builder, name string, t time.Time) {
	el(b, name, t.UTC().Format("2006-01-02 15:04:05")+" UTC")
}

// writeXML sends an XML document with the given status.
func writeXML(w http.ResponseWriter, status int, doc string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(doc)); err != nil {
		log.Printf("writeXML: failed to write response: %v", err)
	}
}

// writeError sends the service's XML error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	var b strings.Builder
	b.WriteString("<response>")
	el(&b, "message", message)
	b.WriteString("</response>")
	writeXML(w, status, b.String())
}

// writeOK sends the plain success envelope used by side-effect-only calls.
func writeOK(w http.ResponseWriter, message string) {
	var b strings.Builder
	b.WriteString("<response>")
	el(&b, "message", message)
	b.WriteString("</response>")
	writeXML(w, http.StatusOK, b.String())
}

func (d *dropRecord) xml() string {
	var b strings.Builder
	b.WriteString("<drop>")
	el(&b, "name", d.name)
	elInt(&b, "asset_count", len(d.assets))
	el(&b, "admin_token", d.adminToken)
	el(&b, "guest_token", d.guestToken)
	elInt64(&b, "current_bytes", d.currentBytes())
	elInt64(&b, "max_bytes", 104857600)
	el(&b, "description", d.description)
	el(&b, "admin_email", d.adminEmail)
	el(&b, "email_key", d.emailKey)
	el(&b, "default_view", d.defaultView)
	el(&b, "chat_password", d.chatPassword)
	elBool(&b, "guests_can_add", d.guestsCanAdd)
	elBool(&b, "guests_can_comment", d.guestsCanComment)
	elBool(&b, "guests_can_delete", d.guestsCanDelete)
	el(&b, "expiration_length", d.expirationLength)
	elTime(&b, "expires_at", d.expiresAt)
	b.WriteString("</drop>")
	return b.String()
}

func (d *dropRecord) currentBytes() int64 {
	var total int64
	for _, a := range d.assets {
		total += a.filesize
	}
	return total
}

func (a *assetRecord) xml() string {
	var b strings.Builder
	b.WriteString("<asset>")
	el(&b, "id", a.id)
	el(&b, "name", a.name)
	el(&b, "type", a.typ)
	el(&b, "title", a.title)
	el(&b, "description", a.description)
	el(&b, "status", "converted")
	elInt64(&b, "filesize", a.filesize)
	elTime(&b, "created_at", a.createdAt)
	switch a.typ {
	case "link":
		el(&b, "url", a.url)
	case "note":
		el(&b, "contents", a.contents)
	}
	if len(a.content) > 0 {
		b.WriteString("<roles><role>")
		el(&b, "name", "original")
		b.WriteString("<locations><location>")
		el(&b, "url", "http://assets.example/"+a.id)
		elInt64(&b, "size", a.filesize)
		b.WriteString("</location></locations>")
		b.WriteString("</role></roles>")
	}
	b.WriteString("</asset>")
	return b.String()
}

func (s *subRecord) xml() string {
	var b strings.Builder
	b.WriteString("<subscription>")
	elInt(&b, "id", s.id)
	el(&b, "type", s.typ)
	el(&b, "url", s.url)
	el(&b, "email", s.email)
	el(&b, "username", s.username)
	el(&b, "message", s.message)
	b.WriteString("</subscription>")
	return b.String()
}

func (c *commentRecord) xml() string {
	var b strings.Builder
	b.WriteString("<comment>")
	elInt(&b, "id", c.id)
	el(&b, "contents", c.contents)
	elTime(&b, "created_at", c.createdAt)
	b.WriteString("</comment>")
	return b.String()
}
