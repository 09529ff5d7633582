package dropio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/leca/dropio-go/internal/param"
	"github.com/leca/dropio-go/internal/sign"
	"github.com/leca/dropio-go/internal/xmlnode"
)

// bodyMode selects how a call's parameters travel.
type bodyMode int

const (
	// bodyQuery appends the parameters to the URL query string (GET/DELETE).
	bodyQuery bodyMode = iota
	// bodyForm sends them as an application/x-www-form-urlencoded body.
	bodyForm
	// bodyJSON sends them as an application/json body (jobs endpoint).
	bodyJSON
)

// call performs one API round trip: common-parameter injection, signing as
// the final mutation, transport, and 200-or-classified-error completion.
// It returns the raw response body on success.
func (c *Client) call(ctx context.Context, method, rawurl string, p *param.Set, mode bodyMode) ([]byte, error) {
	if p == nil {
		p = param.New()
	}
	format := "xml"
	if mode == bodyJSON {
		format = "json"
	}
	p.AddCommon(c.cfg.APIKey, APIVersion, format)
	sign.Params(p, c.cfg.APISecret, c.now())

	var req *http.Request
	var err error
	switch mode {
	case bodyQuery:
		req, err = http.NewRequestWithContext(ctx, method, rawurl+"?"+p.Encode(), nil)
	case bodyForm:
		req, err = http.NewRequestWithContext(ctx, method, rawurl, strings.NewReader(p.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	case bodyJSON:
		var body []byte
		body, err = json.Marshal(p)
		if err == nil {
			req, err = http.NewRequestWithContext(ctx, method, rawurl, bytes.NewReader(body))
		}
		if err == nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return nil, err
	}

	return c.complete(req)
}

// complete executes req and applies the shared status handling: HTTP 200
// yields the body, anything else a classified error or, for statuses
// outside the taxonomy, an unclassified one.
func (c *Client) complete(req *http.Request) ([]byte, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, body)
	}
	return body, nil
}

// classifyStatus maps a non-200 status onto the error taxonomy. A 500 gets
// a generic message regardless of body content; unlisted statuses are not
// service errors.
func classifyStatus(status int, body []byte) error {
	switch status {
	case http.StatusForbidden:
		return &Error{Kind: NotAuthorized, StatusCode: status, Message: errorMessage(body)}
	case http.StatusNotFound:
		return &Error{Kind: NotFound, StatusCode: status, Message: errorMessage(body)}
	case http.StatusBadRequest:
		return &Error{Kind: BadRequest, StatusCode: status, Message: errorMessage(body)}
	case http.StatusInternalServerError:
		return &Error{Kind: ServerError, StatusCode: status, Message: "there was a problem connecting to the service"}
	}
	return fmt.Errorf("dropio: unexpected HTTP status %d", status)
}

// parseRoot decodes an XML response body and checks its root element name.
func parseRoot(body []byte, name string) (*xmlnode.Node, error) {
	root, err := xmlnode.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("dropio: decoding response: %w", err)
	}
	if root.Name != name {
		return nil, fmt.Errorf("dropio: unexpected response element %q, want %q", root.Name, name)
	}
	return root, nil
}

// errorMessage pulls the human-readable message out of an XML error body
// (response/message), falling back to a generic string.
func errorMessage(body []byte) string {
	if root, err := xmlnode.Parse(body); err == nil && root.Name == "response" {
		if msg := root.ChildText("message"); msg != "" {
			return msg
		}
	}
	return "there was a problem with your request"
}
