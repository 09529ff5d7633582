package dropio

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkSize(t *testing.T) {
	// Roughly 1% per chunk, clamped to [50KiB, 1MiB].
	assert.EqualValues(t, minChunk, chunkSize(0))
	assert.EqualValues(t, minChunk, chunkSize(1_000_000))
	assert.EqualValues(t, 100_000, chunkSize(10_000_000))
	assert.EqualValues(t, maxChunk, chunkSize(200_000_000))
}

func TestAddFileStreamDeclaresExactContentLength(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 3000)

	var declared int64
	var received int
	c, _ := testClient(t, "sekrit", func(w http.ResponseWriter, r *http.Request) {
		declared = r.ContentLength
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		received = len(body)
		assert.NotEqual(t, "chunked", r.Header.Get("Transfer-Encoding"))
		w.Write([]byte("<asset><id>a1</id><type>other</type></asset>"))
	})

	a, err := c.AddFileStream(context.Background(), "mydrop", "file.bin",
		bytes.NewReader(data), int64(len(data)), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)

	assert.Positive(t, declared)
	assert.EqualValues(t, declared, received)
}

func TestAddFileStreamMultipartBody(t *testing.T) {
	data := []byte("file payload")

	var fields map[string]string
	var fileName string
	var fileData []byte
	c, _ := testClient(t, "sekrit", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		fields = make(map[string]string)
		for k, vs := range r.MultipartForm.Value {
			fields[k] = vs[0]
		}
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		fileName = hdr.Filename
		fileData, err = io.ReadAll(f)
		require.NoError(t, err)
		w.Write([]byte("<asset><id>a1</id><type>document</type></asset>"))
	})

	opts := &FileOptions{Comment: "first", Description: "a file"}
	_, err := c.AddFileStream(context.Background(), "mydrop", "doc.txt",
		bytes.NewReader(data), int64(len(data)), opts, nil)
	require.NoError(t, err)

	assert.Equal(t, "doc.txt", fileName)
	assert.Equal(t, data, fileData)
	assert.Equal(t, "mydrop", fields["drop_name"])
	assert.Equal(t, "first", fields["comment"])
	assert.Equal(t, "a file", fields["description"])
	assert.Equal(t, "key123", fields["api_key"])
	assert.NotEmpty(t, fields["signature"])
}

func TestAddFileStreamProgress(t *testing.T) {
	data := bytes.Repeat([]byte("y"), 500)

	c, _ := testClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.Write([]byte("<asset><id>a1</id><type>other</type></asset>"))
	})

	type report struct {
		transferred, total int64
		final              bool
	}
	var reports []report
	_, err := c.AddFileStream(context.Background(), "mydrop", "file.bin",
		bytes.NewReader(data), int64(len(data)), nil,
		func(transferred, total int64, final bool) {
			reports = append(reports, report{transferred, total, final})
		})
	require.NoError(t, err)
	require.NotEmpty(t, reports)

	total := reports[0].total
	var prev int64 = -1
	for i, rep := range reports {
		assert.Equal(t, total, rep.total, "total must not change between reports")
		assert.Greater(t, rep.transferred, prev, "progress must be monotonic")
		prev = rep.transferred
		if i < len(reports)-1 {
			assert.False(t, rep.final)
		}
	}
	last := reports[len(reports)-1]
	assert.True(t, last.final)
	assert.Equal(t, last.total, last.transferred)
}

func TestAddFileStreamShortReaderFails(t *testing.T) {
	c, _ := testClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.Write([]byte("<asset><id>a1</id><type>other</type></asset>"))
	})

	// Declared size exceeds what the reader can deliver.
	_, err := c.AddFileStream(context.Background(), "mydrop", "file.bin",
		strings.NewReader("short"), 1000, nil, nil)
	require.Error(t, err)

	// A stream failure is a transport error, not a classified service error.
	var serr *Error
	assert.NotErrorAs(t, err, &serr)
}

func TestAddFileStreamNegativeSize(t *testing.T) {
	c := New(Config{APIKey: "k"})
	_, err := c.AddFileStream(context.Background(), "mydrop", "f",
		strings.NewReader(""), -1, nil, nil)
	assert.Error(t, err)
}

func TestMimeType(t *testing.T) {
	assert.Equal(t, "application/pdf", mimeType("report.pdf"))
	assert.Equal(t, "application/octet-stream", mimeType("noextension"))
}
