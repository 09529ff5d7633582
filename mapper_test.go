package dropio

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leca/dropio-go/internal/xmlnode"
)

func parseNode(t *testing.T, doc string) *xmlnode.Node {
	t.Helper()
	n, err := xmlnode.Parse([]byte(doc))
	require.NoError(t, err)
	return n
}

func TestMapDrop(t *testing.T) {
	n := parseNode(t, `<drop>
		<name>mydrop</name>
		<admin_token>tok-admin</admin_token>
		<guest_token>tok-guest</guest_token>
		<asset_count>3</asset_count>
		<current_bytes>1024</current_bytes>
		<max_bytes>104857600</max_bytes>
		<email>lifecycle@drop.io</email>
		<voicemail>+15550101</voicemail>
		<fax>+15550102</fax>
		<conference>+15550103</conference>
		<rss>http://drop.io/mydrop.rss</rss>
		<guests_can_add>true</guests_can_add>
		<guests_can_delete>false</guests_can_delete>
		<expiration_length>1_YEAR_FROM_LAST_VIEW</expiration_length>
		<expires_at>2027-03-01 12:00:00 UTC</expires_at>
	</drop>`)

	d := mapDrop(n)
	assert.Equal(t, "mydrop", d.Name)
	assert.Equal(t, "tok-admin", d.AdminToken)
	assert.Equal(t, 3, d.AssetCount)
	assert.Equal(t, "lifecycle@drop.io", d.Email)
	assert.Equal(t, "+15550101", d.Voicemail)
	assert.Equal(t, "+15550102", d.Fax)
	assert.Equal(t, "+15550103", d.Conference)
	assert.Equal(t, "http://drop.io/mydrop.rss", d.RSS)
	assert.Equal(t, int64(1024), d.CurrentBytes)
	assert.Equal(t, int64(104857600), d.MaxBytes)
	assert.True(t, d.GuestsCanAdd)
	assert.False(t, d.GuestsCanDelete)
	assert.Equal(t, OneYearFromLastView, d.ExpirationLength)
	assert.Equal(t, time.Date(2027, 3, 1, 12, 0, 0, 0, time.UTC), d.ExpiresAt)
}

func TestMapMovieAsset(t *testing.T) {
	n := parseNode(t, `<asset>
		<id>a1</id>
		<name>clip.mp4</name>
		<type>movie</type>
		<status>converted</status>
		<filesize>2048</filesize>
		<duration>95</duration>
		<created_at>2026-02-15 08:30:00 UTC</created_at>
	</asset>`)

	a, err := mapAsset("mydrop", n)
	require.NoError(t, err)

	assert.Equal(t, "mydrop", a.DropName)
	assert.Equal(t, AssetMovie, a.Type)
	require.NotNil(t, a.Movie)
	assert.Equal(t, 95, a.Movie.Duration)
	assert.Nil(t, a.Image)
	assert.Nil(t, a.Audio)
	assert.Equal(t, int64(2048), a.Filesize)
	assert.Equal(t, time.Date(2026, 2, 15, 8, 30, 0, 0, time.UTC), a.CreatedAt)
}

func TestMapAssetTypedPayloads(t *testing.T) {
	audio, err := mapAsset("d", parseNode(t, `<asset><type>audio</type><artist>me</artist><track_title>song</track_title><duration>180</duration></asset>`))
	require.NoError(t, err)
	require.NotNil(t, audio.Audio)
	assert.Equal(t, "me", audio.Audio.Artist)
	assert.Equal(t, 180, audio.Audio.Duration)

	image, err := mapAsset("d", parseNode(t, `<asset><type>image</type><width>640</width><height>480</height></asset>`))
	require.NoError(t, err)
	require.NotNil(t, image.Image)
	assert.Equal(t, 640, image.Image.Width)
	assert.Equal(t, 480, image.Image.Height)

	link, err := mapAsset("d", parseNode(t, `<asset><type>link</type><url>http://example.com</url></asset>`))
	require.NoError(t, err)
	require.NotNil(t, link.Link)
	assert.Equal(t, "http://example.com", link.Link.URL)

	note, err := mapAsset("d", parseNode(t, `<asset><type>note</type><contents>hi</contents></asset>`))
	require.NoError(t, err)
	require.NotNil(t, note.Note)
	assert.Equal(t, "hi", note.Note.Contents)

	other, err := mapAsset("d", parseNode(t, `<asset><type>other</type></asset>`))
	require.NoError(t, err)
	assert.Nil(t, other.Audio)
	assert.Nil(t, other.Note)
}

func TestMapAssetUnknownType(t *testing.T) {
	_, err := mapAsset("d", parseNode(t, `<asset><type>hologram</type></asset>`))

	var uerr *UnknownAssetTypeError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "hologram", uerr.Value)
}

func TestMapRolesAndLocations(t *testing.T) {
	n := parseNode(t, `<asset>
		<type>image</type>
		<roles>
			<role>
				<name>original</name>
				<mimetype>image/png</mimetype>
				<locations>
					<location><url>http://x/orig</url><size>2048</size></location>
				</locations>
			</role>
			<role>
				<name>thumbnail</name>
				<locations>
					<location><url>http://x/t1</url></location>
					<location><url>http://x/t2</url></location>
				</locations>
			</role>
		</roles>
	</asset>`)

	a, err := mapAsset("d", n)
	require.NoError(t, err)

	want := []Role{
		{
			Attributes: map[string]string{"name": "original", "mimetype": "image/png"},
			Locations:  []Location{{"url": "http://x/orig", "size": "2048"}},
		},
		{
			Attributes: map[string]string{"name": "thumbnail"},
			Locations:  []Location{{"url": "http://x/t1"}, {"url": "http://x/t2"}},
		},
	}
	if diff := cmp.Diff(want, a.Roles); diff != "" {
		t.Errorf("roles mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "original", a.Roles[0].Name())
}

func TestParseTime(t *testing.T) {
	assert.Equal(t,
		time.Date(2026, 2, 15, 8, 30, 0, 0, time.UTC),
		parseTime("2026-02-15 08:30:00 UTC"))
	assert.Equal(t,
		time.Date(2026, 2, 15, 8, 30, 0, 0, time.UTC),
		parseTime("2026-02-15T08:30:00Z"))
	assert.Equal(t,
		time.Date(2026, 2, 15, 8, 30, 0, 0, time.UTC),
		parseTime("2026/02/15 08:30:00"))

	// Garbage maps to the zero time, never to "now".
	assert.True(t, parseTime("not a date").IsZero())
	assert.True(t, parseTime("").IsZero())
}
