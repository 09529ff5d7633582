package dropio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/leca/dropio-go/internal/param"
	"github.com/leca/dropio-go/internal/sign"
)

// ProgressFunc is invoked after every chunk of a transfer with the bytes
// moved so far and the exact total. Calls are sequential and monotonic in
// transferred; the final call always reports transferred == total with
// final set.
type ProgressFunc func(transferred, total int64, final bool)

// Upload chunk size bounds: roughly 1% of the payload per chunk, floored
// and capped so the number of progress callbacks stays bounded regardless
// of file size.
const (
	minChunk = 50 * 1024
	maxChunk = 1024 * 1024
)

// chunkSize returns clamp(total/100, minChunk, maxChunk).
func chunkSize(total int64) int64 {
	n := total / 100
	if n < minChunk {
		return minChunk
	}
	if n > maxChunk {
		return maxChunk
	}
	return n
}

// upload streams file as one multipart/form-data request: one part per
// parameter, then the file part, then the closing boundary. The content
// length is computed exactly up front; there is no chunked transfer
// encoding. A file read error aborts the request and surfaces as a
// transport error, never as a service error.
func (c *Client) upload(ctx context.Context, rawurl, fileName string, file io.Reader, size int64, p *param.Set, progress ProgressFunc) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("dropio: negative file length %d", size)
	}
	p.AddCommon(c.cfg.APIKey, APIVersion, "xml")
	sign.Params(p, c.cfg.APISecret, c.now())

	boundary := "dropio-" + uuid.NewString()

	var pre bytes.Buffer
	for _, k := range p.Keys() {
		pre.WriteString("--" + boundary + "\r\n")
		pre.WriteString("Content-Disposition: form-data; name=\"" + k + "\"\r\n\r\n")
		pre.WriteString(p.Get(k) + "\r\n")
	}
	pre.WriteString("--" + boundary + "\r\n")
	pre.WriteString("Content-Disposition: form-data; name=\"file\"; filename=\"" + fileName + "\"\r\n")
	pre.WriteString("Content-Type: " + mimeType(fileName) + "\r\n\r\n")
	footer := "\r\n--" + boundary + "--\r\n"

	total := int64(pre.Len()) + size + int64(len(footer))

	pr, pw := io.Pipe()
	go func() {
		var written int64
		report := func(final bool) {
			if progress != nil {
				progress(written, total, final)
			}
		}

		if _, err := pw.Write(pre.Bytes()); err != nil {
			pw.CloseWithError(err)
			return
		}
		written += int64(pre.Len())
		report(false)

		buf := make([]byte, chunkSize(total))
		remaining := size
		for remaining > 0 {
			want := int64(len(buf))
			if remaining < want {
				want = remaining
			}
			n, rerr := file.Read(buf[:want])
			if n > 0 {
				if _, err := pw.Write(buf[:n]); err != nil {
					pw.CloseWithError(err)
					return
				}
				written += int64(n)
				remaining -= int64(n)
				report(false)
			}
			if rerr == io.EOF {
				if remaining > 0 {
					pw.CloseWithError(fmt.Errorf("dropio: file ended %d bytes short of declared length", remaining))
					return
				}
				break
			}
			if rerr != nil {
				pw.CloseWithError(fmt.Errorf("dropio: reading upload stream: %w", rerr))
				return
			}
		}

		if _, err := pw.Write([]byte(footer)); err != nil {
			pw.CloseWithError(err)
			return
		}
		written += int64(len(footer))
		report(true)
		pw.Close()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawurl, pr)
	if err != nil {
		pr.Close()
		return nil, err
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)

	return c.complete(req)
}

// mimeType guesses the file part's content type from the file extension.
func mimeType(fileName string) string {
	if t := mime.TypeByExtension(filepath.Ext(fileName)); t != "" {
		return t
	}
	return "application/octet-stream"
}
