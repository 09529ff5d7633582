package dropio

import (
	"strconv"

	"github.com/leca/dropio-go/internal/sign"
)

// Shareable authenticated URLs use the entity-scoped signing mode: the
// signature covers only expires+token+dropName, never the full parameter
// set. It exists for handing out time-limited view links and is not valid
// for API calls.

// SignedDropURL returns a time-limited authenticated URL for viewing the
// drop. The admin token is preferred; the guest token is used when no admin
// token is present.
func (c *Client) SignedDropURL(d *Drop) string {
	expires := c.now().Add(sign.Skew).Unix()
	signature := sign.Resource(expires, dropToken(d), d.Name)
	return c.baseURL(seg(d.Name)+"/from_api") +
		"?signature=" + signature +
		"&expires=" + strconv.FormatInt(expires, 10)
}

// SignedAssetURL returns a time-limited authenticated URL for viewing one
// asset of the drop.
func (c *Client) SignedAssetURL(d *Drop, a *Asset) string {
	expires := c.now().Add(sign.Skew).Unix()
	signature := sign.Resource(expires, dropToken(d), d.Name)
	return c.baseURL(seg(d.Name)+"/asset/"+seg(a.Name)+"/from_api") +
		"?signature=" + signature +
		"&expires=" + strconv.FormatInt(expires, 10)
}

// OriginalFileURL returns the unsigned download URL for the asset's
// original file, carrying only the common parameters.
func (c *Client) OriginalFileURL(dropName, assetID string) string {
	return c.assetURL(dropName, assetID) + "/download/original" +
		"?version=" + APIVersion + "&api_key=" + c.cfg.APIKey
}

func dropToken(d *Drop) string {
	if d.AdminToken != "" {
		return d.AdminToken
	}
	return d.GuestToken
}
