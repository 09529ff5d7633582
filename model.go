package dropio

import "time"

// Drop is a named server-side container of assets.
type Drop struct {
	Name        string
	Description string
	Email       string
	Voicemail   string
	Fax         string
	Conference  string
	RSS         string

	// Per-actor tokens from older deployments. The current API generation
	// authorizes through the signed call itself; the tokens remain only to
	// generate shareable authenticated URLs.
	AdminToken string
	GuestToken string

	AssetCount   int
	CurrentBytes int64
	MaxBytes     int64

	ChatPassword    string
	DefaultView     string
	AdminEmail      string
	EmailKey        string
	HiddenUploadURL string

	GuestsCanAdd     bool
	GuestsCanComment bool
	GuestsCanDelete  bool

	ExpirationLength ExpirationLength
	ExpiresAt        time.Time
}

// Asset is a single item belonging to a drop. Type selects which of the
// optional payload fields is populated; the rest stay nil.
type Asset struct {
	DropName string

	ID          string
	Name        string
	Title       string
	Description string
	Status      string
	Filesize    int64
	CreatedAt   time.Time

	Type  AssetType
	Roles []Role

	Audio    *AudioInfo
	Document *DocumentInfo
	Image    *ImageInfo
	Movie    *MovieInfo
	Link     *LinkInfo
	Note     *NoteInfo
}

// Role is a named rendition purpose for an asset. The server's role schema
// is not fixed across asset types, so everything except the locations list
// lands in a flat attribute bag.
type Role struct {
	Attributes map[string]string
	Locations  []Location
}

// Name returns the role's name attribute.
func (r Role) Name() string { return r.Attributes["name"] }

// Location is one concrete retrievable rendition under a role, as a flat
// key/value bag (url, size, mimetype and whatever else the server sent).
type Location map[string]string

// AudioInfo holds audio-specific asset fields.
type AudioInfo struct {
	Artist     string
	TrackTitle string
	Duration   int
}

// DocumentInfo holds document-specific asset fields.
type DocumentInfo struct {
	Pages int
}

// ImageInfo holds image-specific asset fields.
type ImageInfo struct {
	Width  int
	Height int
}

// MovieInfo holds movie-specific asset fields.
type MovieInfo struct {
	Duration int
}

// LinkInfo holds link-specific asset fields.
type LinkInfo struct {
	URL string
}

// NoteInfo holds note-specific asset fields.
type NoteInfo struct {
	Contents string
}

// Subscription is a drop-scoped event listener.
type Subscription struct {
	DropName string
	ID       int
	Type     SubscriptionType
	URL      string
	Email    string
	Username string
	Message  string
}

// Comment is an asset-scoped free-text annotation.
type Comment struct {
	DropName  string
	AssetID   string
	ID        int
	Contents  string
	CreatedAt time.Time
}
