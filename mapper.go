package dropio

import (
	"strconv"
	"strings"
	"time"

	"github.com/leca/dropio-go/internal/xmlnode"
)

// The mapper turns loosely-typed response nodes into the domain model.
// Every scalar extraction is null-safe: a missing element maps to the zero
// value, matching a server that omits fields it has no value for.

func mapDrop(n *xmlnode.Node) *Drop {
	return &Drop{
		Name:             n.ChildText("name"),
		Description:      n.ChildText("description"),
		Email:            n.ChildText("email"),
		Voicemail:        n.ChildText("voicemail"),
		Fax:              n.ChildText("fax"),
		Conference:       n.ChildText("conference"),
		RSS:              n.ChildText("rss"),
		AdminToken:       n.ChildText("admin_token"),
		GuestToken:       n.ChildText("guest_token"),
		AssetCount:       nodeInt(n, "asset_count"),
		CurrentBytes:     nodeInt64(n, "current_bytes"),
		MaxBytes:         nodeInt64(n, "max_bytes"),
		ChatPassword:     n.ChildText("chat_password"),
		DefaultView:      n.ChildText("default_view"),
		AdminEmail:       n.ChildText("admin_email"),
		EmailKey:         n.ChildText("email_key"),
		HiddenUploadURL:  n.ChildText("hidden_upload_url"),
		GuestsCanAdd:     nodeBool(n, "guests_can_add"),
		GuestsCanComment: nodeBool(n, "guests_can_comment"),
		GuestsCanDelete:  nodeBool(n, "guests_can_delete"),
		ExpirationLength: ExpirationLength(n.ChildText("expiration_length")),
		ExpiresAt:        nodeTime(n, "expires_at"),
	}
}

// mapAsset maps one asset node, selecting the typed payload through the
// closed discriminator switch. An unrecognized type fails the mapping.
func mapAsset(dropName string, n *xmlnode.Node) (*Asset, error) {
	typ, err := parseAssetType(n.ChildText("type"))
	if err != nil {
		return nil, err
	}

	a := &Asset{
		DropName:    dropName,
		ID:          n.ChildText("id"),
		Name:        n.ChildText("name"),
		Title:       n.ChildText("title"),
		Description: n.ChildText("description"),
		Status:      n.ChildText("status"),
		Filesize:    nodeInt64(n, "filesize"),
		CreatedAt:   nodeTime(n, "created_at"),
		Type:        typ,
	}

	switch typ {
	case AssetAudio:
		a.Audio = &AudioInfo{
			Artist:     n.ChildText("artist"),
			TrackTitle: n.ChildText("track_title"),
			Duration:   nodeInt(n, "duration"),
		}
	case AssetDocument:
		a.Document = &DocumentInfo{Pages: nodeInt(n, "pages")}
	case AssetImage:
		a.Image = &ImageInfo{
			Width:  nodeInt(n, "width"),
			Height: nodeInt(n, "height"),
		}
	case AssetMovie:
		a.Movie = &MovieInfo{Duration: nodeInt(n, "duration")}
	case AssetLink:
		a.Link = &LinkInfo{URL: n.ChildText("url")}
	case AssetNote:
		a.Note = &NoteInfo{Contents: n.ChildText("contents")}
	}

	if roles := n.First("roles"); roles != nil {
		for _, r := range roles.All("role") {
			a.Roles = append(a.Roles, mapRole(r))
		}
	}
	return a, nil
}

// mapRole builds one role bag. Every child element becomes an attribute
// except locations, which expands into one Location bag per location child.
// The two-level structure is what keeps a location tied to its role.
func mapRole(n *xmlnode.Node) Role {
	role := Role{Attributes: make(map[string]string)}
	for _, c := range n.Children {
		if c.Name == "locations" {
			for _, loc := range c.All("location") {
				bag := make(Location, len(loc.Children))
				for _, lc := range loc.Children {
					bag[lc.Name] = lc.Text
				}
				role.Locations = append(role.Locations, bag)
			}
			continue
		}
		role.Attributes[c.Name] = c.Text
	}
	return role
}

func mapSubscription(dropName string, n *xmlnode.Node) *Subscription {
	return &Subscription{
		DropName: dropName,
		ID:       nodeInt(n, "id"),
		Type:     SubscriptionType(n.ChildText("type")),
		URL:      n.ChildText("url"),
		Email:    n.ChildText("email"),
		Username: n.ChildText("username"),
		Message:  n.ChildText("message"),
	}
}

func mapComment(dropName, assetID string, n *xmlnode.Node) *Comment {
	return &Comment{
		DropName:  dropName,
		AssetID:   assetID,
		ID:        nodeInt(n, "id"),
		Contents:  n.ChildText("contents"),
		CreatedAt: nodeTime(n, "created_at"),
	}
}

func nodeInt(n *xmlnode.Node, name string) int {
	v, _ := strconv.Atoi(n.ChildText(name))
	return v
}

func nodeInt64(n *xmlnode.Node, name string) int64 {
	v, _ := strconv.ParseInt(n.ChildText(name), 10, 64)
	return v
}

func nodeBool(n *xmlnode.Node, name string) bool {
	v, _ := strconv.ParseBool(n.ChildText(name))
	return v
}

// timeLayouts are the server's known date formats, after the trailing
// "UTC" marker has been stripped.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02 15:04:05",
}

func nodeTime(n *xmlnode.Node, name string) time.Time {
	return parseTime(n.ChildText(name))
}

// parseTime strips the non-standard trailing "UTC" marker and tries the
// known layouts. An unparseable value maps to the zero time rather than
// failing the whole mapping; callers can detect it with IsZero.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "UTC"))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
