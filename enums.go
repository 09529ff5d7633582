package dropio

import (
	"strconv"

	"github.com/leca/dropio-go/internal/param"
)

// AssetType discriminates the closed set of server asset types.
type AssetType string

const (
	AssetImage    AssetType = "image"
	AssetAudio    AssetType = "audio"
	AssetDocument AssetType = "document"
	AssetMovie    AssetType = "movie"
	AssetLink     AssetType = "link"
	AssetNote     AssetType = "note"
	AssetOther    AssetType = "other"
)

// parseAssetType maps the wire discriminator onto AssetType. The switch is
// closed: a value outside it is a mapping error, not a new type.
func parseAssetType(s string) (AssetType, error) {
	switch t := AssetType(s); t {
	case AssetImage, AssetAudio, AssetDocument, AssetMovie, AssetLink, AssetNote, AssetOther:
		return t, nil
	}
	return "", &UnknownAssetTypeError{Value: s}
}

// ExpirationLength is a drop's expiration policy, in the server's wire form.
type ExpirationLength string

const (
	OneDayFromNow        ExpirationLength = "1_DAY_FROM_NOW"
	OneWeekFromNow       ExpirationLength = "1_WEEK_FROM_NOW"
	OneMonthFromNow      ExpirationLength = "1_MONTH_FROM_NOW"
	OneYearFromNow       ExpirationLength = "1_YEAR_FROM_NOW"
	OneDayFromLastView   ExpirationLength = "1_DAY_FROM_LAST_VIEW"
	OneWeekFromLastView  ExpirationLength = "1_WEEK_FROM_LAST_VIEW"
	OneMonthFromLastView ExpirationLength = "1_MONTH_FROM_LAST_VIEW"
	OneYearFromLastView  ExpirationLength = "1_YEAR_FROM_LAST_VIEW"
)

// Order selects asset listing order.
type Order string

const (
	Oldest Order = "oldest"
	Newest Order = "newest"
)

// SubscriptionType discriminates subscription targets.
type SubscriptionType string

const (
	SubscriptionPingback SubscriptionType = "pingback"
	SubscriptionEmail    SubscriptionType = "email"
	SubscriptionTwitter  SubscriptionType = "twitter"
)

// Events is the bitmask of drop events a subscription listens for.
type Events int

const (
	AssetAdded Events = 1 << iota
	AssetUpdated
	AssetDeleted
	CommentAdded
	CommentUpdated
	CommentDeleted
)

// apply writes one boolean parameter per event flag.
func (e Events) apply(p *param.Set) {
	flags := []struct {
		name string
		bit  Events
	}{
		{"asset_added", AssetAdded},
		{"asset_updated", AssetUpdated},
		{"asset_deleted", AssetDeleted},
		{"comment_added", CommentAdded},
		{"comment_updated", CommentUpdated},
		{"comment_deleted", CommentDeleted},
	}
	for _, f := range flags {
		p.Add(f.name, strconv.FormatBool(e&f.bit != 0))
	}
}
