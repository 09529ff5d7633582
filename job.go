package dropio

import (
	"context"
	"errors"
	"net/http"

	"github.com/leca/dropio-go/internal/param"
)

// JobSpec describes one input or output of a conversion job. The accepted
// keys depend on the job type and plugin; the server consumes the structure
// as-is.
type JobSpec map[string]any

// Convert submits a conversion job. Unlike the rest of the API this
// endpoint takes a JSON body, because inputs and outputs are nested
// structures rather than flat form fields.
func (c *Client) Convert(ctx context.Context, jobType string, inputs, outputs []JobSpec, plugin, pingbackURL string) error {
	if jobType == "" {
		return errors.New("dropio: job type can't be blank")
	}
	p := param.New()
	p.Add("job_type", jobType)
	p.AddAny("inputs", inputs)
	p.AddAny("outputs", outputs)
	if plugin != "" {
		p.Add("plugin", plugin)
	}
	if pingbackURL != "" {
		p.Add("pingback_url", pingbackURL)
	}
	_, err := c.call(ctx, http.MethodPost, c.apiURL("jobs/"), p, bodyJSON)
	return err
}
