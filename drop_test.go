package dropio

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateDropSendsOnlySetFields(t *testing.T) {
	var form url.Values
	c, _ := testClient(t, "sekrit", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte("<drop><name>mydrop</name></drop>"))
	})

	_, err := c.UpdateDrop(context.Background(), "mydrop", DropUpdate{
		ChatPassword: "hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, "hunter2", form.Get("chat_password"))

	// Unset fields never travel, so the server leaves them untouched.
	for _, absent := range []string{
		"description", "admin_email", "email_key", "default_view",
		"password", "admin_password", "premium_code", "expiration_length",
		"guests_can_add", "guests_can_comment", "guests_can_delete",
	} {
		assert.False(t, form.Has(absent), "field %q should not be sent", absent)
	}

	// Only the update field plus the common and signing parameters.
	assert.ElementsMatch(t,
		[]string{"chat_password", "api_key", "format", "version", "timestamp", "signature"},
		keysOf(form))
}

func keysOf(form url.Values) []string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	return keys
}

func TestUpdateDropSendsExplicitFalse(t *testing.T) {
	var form url.Values
	c, _ := testClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte("<drop><name>mydrop</name></drop>"))
	})

	off := false
	_, err := c.UpdateDrop(context.Background(), "mydrop", DropUpdate{
		GuestsCanAdd: &off,
	})
	require.NoError(t, err)

	assert.Equal(t, "false", form.Get("guests_can_add"))
	assert.False(t, form.Has("guests_can_comment"))
}

func TestCreateDropOmitsEmptyOptionals(t *testing.T) {
	var form url.Values
	c, _ := testClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte("<drop><name>generated</name></drop>"))
	})

	d, err := c.CreateDrop(context.Background(), CreateDropRequest{})
	require.NoError(t, err)
	assert.Equal(t, "generated", d.Name)

	assert.False(t, form.Has("name"))
	assert.False(t, form.Has("password"))
	assert.Equal(t, "false", form.Get("guests_can_add"))
}

func TestFindDropRequiresName(t *testing.T) {
	c := New(Config{APIKey: "k"})
	_, err := c.FindDrop(context.Background(), "")
	assert.Error(t, err)
}

func TestListDropsRequiresManagerToken(t *testing.T) {
	c := New(Config{APIKey: "k"})
	_, err := c.ListDrops(context.Background(), "", 1)
	assert.Error(t, err)
}
