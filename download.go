package dropio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/leca/dropio-go/internal/param"
	"github.com/leca/dropio-go/internal/sign"
)

// DownloadOriginal streams the asset's original file into the local file at
// dest, reporting progress with the same chunked contract as uploads (read
// side instead of write side). The destination is created or truncated.
func (c *Client) DownloadOriginal(ctx context.Context, dropName, assetID, dest string, progress ProgressFunc) error {
	p := param.New()
	p.AddCommon(c.cfg.APIKey, APIVersion, "xml")
	sign.Params(p, c.cfg.APISecret, c.now())

	rawurl := c.apiURL("drops/"+seg(dropName)+"/assets/"+seg(assetID)+"/download/original") + "?" + p.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, rerr := io.ReadAll(resp.Body)
		if rerr != nil {
			return rerr
		}
		return classifyStatus(resp.StatusCode, body)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	total := resp.ContentLength
	chunk := chunkSize(total)
	if total < 0 {
		chunk = maxChunk
	}
	buf := make([]byte, chunk)

	var received int64
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				return werr
			}
			received += int64(n)
			if progress != nil && rerr != io.EOF {
				progress(received, total, false)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("dropio: reading download stream: %w", rerr)
		}
	}

	if total >= 0 && received != total {
		return fmt.Errorf("dropio: download ended after %d of %d bytes", received, total)
	}
	if progress != nil {
		progress(received, received, true)
	}
	return f.Sync()
}
