package dropio

import (
	"context"
	"net/http"
	"strconv"

	"github.com/leca/dropio-go/internal/param"
)

// CreateComment adds a comment to the asset.
func (c *Client) CreateComment(ctx context.Context, dropName, assetID, contents string) (*Comment, error) {
	p := param.New()
	p.Add("contents", contents)
	body, err := c.call(ctx, http.MethodPost, c.commentsURL(dropName, assetID), p, bodyForm)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "comment")
	if err != nil {
		return nil, err
	}
	return mapComment(dropName, assetID, root), nil
}

// ListComments returns one page of the asset's comments.
func (c *Client) ListComments(ctx context.Context, dropName, assetID string, page int) ([]*Comment, error) {
	p := param.New()
	p.Add("page", strconv.Itoa(page))
	body, err := c.call(ctx, http.MethodGet, c.commentsURL(dropName, assetID), p, bodyQuery)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "comments")
	if err != nil {
		return nil, err
	}
	comments := make([]*Comment, 0, len(root.Children))
	for _, n := range root.All("comment") {
		comments = append(comments, mapComment(dropName, assetID, n))
	}
	return comments, nil
}

// UpdateComment replaces the comment's contents.
func (c *Client) UpdateComment(ctx context.Context, dropName, assetID string, id int, contents string) (*Comment, error) {
	p := param.New()
	p.Add("contents", contents)
	url := c.commentsURL(dropName, assetID) + strconv.Itoa(id)
	body, err := c.call(ctx, http.MethodPut, url, p, bodyForm)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "comment")
	if err != nil {
		return nil, err
	}
	return mapComment(dropName, assetID, root), nil
}

// DeleteComment removes one comment by id.
func (c *Client) DeleteComment(ctx context.Context, dropName, assetID string, id int) error {
	url := c.commentsURL(dropName, assetID) + strconv.Itoa(id)
	_, err := c.call(ctx, http.MethodDelete, url, nil, bodyQuery)
	return err
}

func (c *Client) commentsURL(dropName, assetID string) string {
	return c.apiURL("drops/" + seg(dropName) + "/assets/" + seg(assetID) + "/comments/")
}
