package dropio

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leca/dropio-go/internal/param"
)

// FindAsset fetches one asset by id.
func (c *Client) FindAsset(ctx context.Context, dropName, assetID string) (*Asset, error) {
	if dropName == "" || assetID == "" {
		return nil, errors.New("dropio: drop name and asset id can't be blank")
	}
	body, err := c.call(ctx, http.MethodGet, c.assetURL(dropName, assetID), nil, bodyQuery)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "asset")
	if err != nil {
		return nil, err
	}
	return mapAsset(dropName, root)
}

// ListAssets returns one page of the drop's assets in the given order.
func (c *Client) ListAssets(ctx context.Context, dropName string, page int, order Order) ([]*Asset, error) {
	p := param.New()
	p.Add("page", strconv.Itoa(page))
	if order != "" {
		p.Add("order", string(order))
	}
	body, err := c.call(ctx, http.MethodGet, c.apiURL("drops/"+seg(dropName)+"/assets/"), p, bodyQuery)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "assets")
	if err != nil {
		return nil, err
	}
	assets := make([]*Asset, 0, len(root.Children))
	for _, n := range root.All("asset") {
		a, err := mapAsset(dropName, n)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, nil
}

// AssetUpdate carries a partial asset update; empty fields are not sent.
type AssetUpdate struct {
	Name        string
	Title       string
	Description string
	// URL applies to link assets.
	URL string
	// Contents applies to note assets.
	Contents string
}

// UpdateAsset applies a partial update and returns the asset's new state.
func (c *Client) UpdateAsset(ctx context.Context, dropName, assetID string, u AssetUpdate) (*Asset, error) {
	p := param.New()
	add := func(key, val string) {
		if val != "" {
			p.Add(key, val)
		}
	}
	add("name", u.Name)
	add("title", u.Title)
	add("description", u.Description)
	add("url", u.URL)
	add("contents", u.Contents)

	body, err := c.call(ctx, http.MethodPut, c.assetURL(dropName, assetID), p, bodyForm)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "asset")
	if err != nil {
		return nil, err
	}
	return mapAsset(dropName, root)
}

// DeleteAsset removes the asset from its drop.
func (c *Client) DeleteAsset(ctx context.Context, dropName, assetID string) error {
	_, err := c.call(ctx, http.MethodDelete, c.assetURL(dropName, assetID), nil, bodyQuery)
	return err
}

// CopyAsset copies the asset into targetDrop.
func (c *Client) CopyAsset(ctx context.Context, dropName, assetID, targetDrop string) error {
	p := param.New()
	p.Add("drop_name", targetDrop)
	_, err := c.call(ctx, http.MethodPost, c.assetURL(dropName, assetID)+"/copy", p, bodyForm)
	return err
}

// MoveAsset moves the asset into targetDrop.
func (c *Client) MoveAsset(ctx context.Context, dropName, assetID, targetDrop string) error {
	p := param.New()
	p.Add("drop_name", targetDrop)
	_, err := c.call(ctx, http.MethodPost, c.assetURL(dropName, assetID)+"/move", p, bodyForm)
	return err
}

// FileOptions carries the optional metadata attached to an uploaded file.
type FileOptions struct {
	Comment     string
	Description string
}

// AddFile uploads the local file at path into the drop as a new asset,
// reporting transfer progress per chunk.
func (c *Client) AddFile(ctx context.Context, dropName, path string, opts *FileOptions, progress ProgressFunc) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return c.AddFileStream(ctx, dropName, filepath.Base(path), f, info.Size(), opts, progress)
}

// AddFileStream uploads size bytes read from r into the drop as a new
// asset. The declared size must be exact; a short or failing reader aborts
// the upload with a transport error.
func (c *Client) AddFileStream(ctx context.Context, dropName, fileName string, r io.Reader, size int64, opts *FileOptions, progress ProgressFunc) (*Asset, error) {
	p := param.New()
	p.Add("drop_name", dropName)
	if opts != nil {
		if opts.Comment != "" {
			p.Add("comment", opts.Comment)
		}
		if opts.Description != "" {
			p.Add("description", opts.Description)
		}
	}

	body, err := c.upload(ctx, c.cfg.UploadURL, fileName, r, size, p, progress)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "asset")
	if err != nil {
		return nil, err
	}
	return mapAsset(dropName, root)
}

// AddFileFromURL asks the server to fetch fileURL into the drop.
func (c *Client) AddFileFromURL(ctx context.Context, dropName, fileURL, description string) (*Asset, error) {
	p := param.New()
	p.Add("file_url", fileURL)
	if description != "" {
		p.Add("description", description)
	}
	return c.createAsset(ctx, dropName, p)
}

// CreateLink adds a link asset to the drop.
func (c *Client) CreateLink(ctx context.Context, dropName, title, description, linkURL string) (*Asset, error) {
	p := param.New()
	p.Add("title", title)
	p.Add("description", description)
	p.Add("url", linkURL)
	return c.createAsset(ctx, dropName, p)
}

// CreateNote adds a note asset to the drop.
func (c *Client) CreateNote(ctx context.Context, dropName, title, contents, description string) (*Asset, error) {
	p := param.New()
	p.Add("title", title)
	p.Add("contents", contents)
	p.Add("description", description)
	return c.createAsset(ctx, dropName, p)
}

func (c *Client) createAsset(ctx context.Context, dropName string, p *param.Set) (*Asset, error) {
	body, err := c.call(ctx, http.MethodPost, c.apiURL("drops/"+seg(dropName)+"/assets/"), p, bodyForm)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "asset")
	if err != nil {
		return nil, err
	}
	return mapAsset(dropName, root)
}

// EmbedCode fetches the embeddable HTML snippet for the asset.
func (c *Client) EmbedCode(ctx context.Context, dropName, assetID string) (string, error) {
	body, err := c.call(ctx, http.MethodGet, c.assetURL(dropName, assetID)+"/embed_code", nil, bodyQuery)
	if err != nil {
		return "", err
	}
	root, err := parseRoot(body, "response")
	if err != nil {
		return "", err
	}
	return root.ChildText("embed_code"), nil
}

// SendToEmails sends the asset to a list of email addresses.
func (c *Client) SendToEmails(ctx context.Context, dropName, assetID string, emails []string, message string) error {
	p := param.New()
	p.Add("medium", "email")
	p.Add("emails", strings.Join(emails, ","))
	if message != "" {
		p.Add("message", message)
	}
	return c.send(ctx, dropName, assetID, p)
}

// SendToFax sends the asset to a fax number.
func (c *Client) SendToFax(ctx context.Context, dropName, assetID, faxNumber string) error {
	p := param.New()
	p.Add("medium", "fax")
	p.Add("fax_number", faxNumber)
	return c.send(ctx, dropName, assetID, p)
}

// SendToDrop sends the asset to another drop.
func (c *Client) SendToDrop(ctx context.Context, dropName, assetID, targetDrop string) error {
	p := param.New()
	p.Add("medium", "drop")
	p.Add("drop_name", targetDrop)
	return c.send(ctx, dropName, assetID, p)
}

func (c *Client) send(ctx context.Context, dropName, assetID string, p *param.Set) error {
	_, err := c.call(ctx, http.MethodPost, c.assetURL(dropName, assetID)+"/send_to", p, bodyForm)
	return err
}

func (c *Client) assetURL(dropName, assetID string) string {
	return c.apiURL("drops/" + seg(dropName) + "/assets/" + seg(assetID))
}
