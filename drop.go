package dropio

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/leca/dropio-go/internal/param"
)

// CreateDropRequest carries the fields for a new drop. Zero-valued optional
// fields are not sent.
type CreateDropRequest struct {
	Name             string
	GuestsCanAdd     bool
	GuestsCanComment bool
	GuestsCanDelete  bool
	ExpirationLength ExpirationLength
	Password         string
	AdminPassword    string
	PremiumCode      string
}

// CreateDrop creates a new drop. An empty Name asks the server to generate
// one.
func (c *Client) CreateDrop(ctx context.Context, r CreateDropRequest) (*Drop, error) {
	p := param.New()
	if r.Name != "" {
		p.Add("name", r.Name)
	}
	p.Add("guests_can_add", strconv.FormatBool(r.GuestsCanAdd))
	p.Add("guests_can_comment", strconv.FormatBool(r.GuestsCanComment))
	p.Add("guests_can_delete", strconv.FormatBool(r.GuestsCanDelete))
	if r.ExpirationLength != "" {
		p.Add("expiration_length", string(r.ExpirationLength))
	}
	if r.Password != "" {
		p.Add("password", r.Password)
	}
	if r.AdminPassword != "" {
		p.Add("admin_password", r.AdminPassword)
	}
	if r.PremiumCode != "" {
		p.Add("premium_code", r.PremiumCode)
	}

	body, err := c.call(ctx, http.MethodPost, c.apiURL("drops/"), p, bodyForm)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "drop")
	if err != nil {
		return nil, err
	}
	return mapDrop(root), nil
}

// FindDrop fetches a drop by name.
func (c *Client) FindDrop(ctx context.Context, name string) (*Drop, error) {
	if name == "" {
		return nil, errors.New("dropio: drop name can't be blank")
	}
	body, err := c.call(ctx, http.MethodGet, c.apiURL("drops/"+seg(name)), nil, bodyQuery)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "drop")
	if err != nil {
		return nil, err
	}
	return mapDrop(root), nil
}

// ListDrops returns one page of the drops belonging to the manager account
// identified by managerAPIToken.
func (c *Client) ListDrops(ctx context.Context, managerAPIToken string, page int) ([]*Drop, error) {
	if managerAPIToken == "" {
		return nil, errors.New("dropio: manager api token can't be blank")
	}
	p := param.New()
	p.Add("manager_api_token", managerAPIToken)
	p.Add("page", strconv.Itoa(page))

	body, err := c.call(ctx, http.MethodGet, c.apiURL("accounts/drops/"), p, bodyQuery)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "drops")
	if err != nil {
		return nil, err
	}
	drops := make([]*Drop, 0, len(root.Children))
	for _, n := range root.All("drop") {
		drops = append(drops, mapDrop(n))
	}
	return drops, nil
}

// DropUpdate carries a partial drop update. Only the fields that are set
// are transmitted; absent fields are not overwritten server-side.
type DropUpdate struct {
	Description      string
	AdminEmail       string
	EmailKey         string
	DefaultView      string
	ChatPassword     string
	Password         string
	AdminPassword    string
	PremiumCode      string
	ExpirationLength ExpirationLength
	GuestsCanAdd     *bool
	GuestsCanComment *bool
	GuestsCanDelete  *bool
}

func (u DropUpdate) params() *param.Set {
	p := param.New()
	add := func(key, val string) {
		if val != "" {
			p.Add(key, val)
		}
	}
	add("description", u.Description)
	add("admin_email", u.AdminEmail)
	add("email_key", u.EmailKey)
	add("default_view", u.DefaultView)
	add("chat_password", u.ChatPassword)
	add("password", u.Password)
	add("admin_password", u.AdminPassword)
	add("premium_code", u.PremiumCode)
	add("expiration_length", string(u.ExpirationLength))
	addBool := func(key string, val *bool) {
		if val != nil {
			p.Add(key, strconv.FormatBool(*val))
		}
	}
	addBool("guests_can_add", u.GuestsCanAdd)
	addBool("guests_can_comment", u.GuestsCanComment)
	addBool("guests_can_delete", u.GuestsCanDelete)
	return p
}

// UpdateDrop applies a partial update and returns the drop's new state.
func (c *Client) UpdateDrop(ctx context.Context, name string, u DropUpdate) (*Drop, error) {
	body, err := c.call(ctx, http.MethodPut, c.apiURL("drops/"+seg(name)), u.params(), bodyForm)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "drop")
	if err != nil {
		return nil, err
	}
	return mapDrop(root), nil
}

// EmptyDrop deletes every asset in the drop but keeps the drop itself.
func (c *Client) EmptyDrop(ctx context.Context, name string) error {
	_, err := c.call(ctx, http.MethodPost, c.apiURL("drops/"+seg(name)+"/empty"), nil, bodyForm)
	return err
}

// DestroyDrop deletes the drop server-side. This is irreversible.
func (c *Client) DestroyDrop(ctx context.Context, name string) error {
	_, err := c.call(ctx, http.MethodDelete, c.apiURL("drops/"+seg(name)), nil, bodyQuery)
	return err
}

// PromoteNick promotes a chat nick to admin in the drop's chat.
func (c *Client) PromoteNick(ctx context.Context, name, nick string) error {
	if nick == "" {
		return errors.New("dropio: nick can't be blank")
	}
	p := param.New()
	p.Add("nick", nick)
	_, err := c.call(ctx, http.MethodPut, c.apiURL("drops/"+seg(name)+"/promote"), p, bodyForm)
	return err
}

// UploadCode fetches the drop's hidden upload code.
func (c *Client) UploadCode(ctx context.Context, name string) (string, error) {
	body, err := c.call(ctx, http.MethodGet, c.apiURL("drops/"+seg(name)+"/upload_code"), nil, bodyQuery)
	if err != nil {
		return "", err
	}
	root, err := parseRoot(body, "response")
	if err != nil {
		return "", err
	}
	return root.ChildText("upload_code"), nil
}
