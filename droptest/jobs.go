package droptest

import "net/http"

// convertJob accepts a conversion job. The fake never runs conversions;
// it validates the request shape and acknowledges.
func (s *Server) convertJob(w http.ResponseWriter, r *http.Request) {
	p := params(r)
	if p.Get("job_type") == "" {
		writeError(w, http.StatusBadRequest, "job_type is required")
		return
	}
	if !p.Has("inputs") || !p.Has("outputs") {
		writeError(w, http.StatusBadRequest, "inputs and outputs are required")
		return
	}
	writeOK(w, "job accepted")
}
