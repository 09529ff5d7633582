package dropio

import "fmt"

// ErrorKind classifies a server-reported failure.
type ErrorKind int

const (
	// NotAuthorized corresponds to HTTP 403.
	NotAuthorized ErrorKind = iota + 1
	// NotFound corresponds to HTTP 404.
	NotFound
	// BadRequest corresponds to HTTP 400.
	BadRequest
	// ServerError corresponds to HTTP 500.
	ServerError
)

// String returns the kind's name.
func (k ErrorKind) String() string {
	switch k {
	case NotAuthorized:
		return "not authorized"
	case NotFound:
		return "not found"
	case BadRequest:
		return "bad request"
	case ServerError:
		return "server error"
	}
	return "unknown"
}

// Error is a classified service failure. Anything below the HTTP layer
// (DNS, connect, timeout, stream I/O) is returned as a plain transport
// error instead.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("dropio: %s: %s", e.Kind, e.Message)
}

// UnknownAssetTypeError reports a server asset type outside the closed
// enumeration. The mapper raises it instead of silently defaulting, so a
// newly introduced server type cannot be mis-filed as "other".
type UnknownAssetTypeError struct {
	Value string
}

func (e *UnknownAssetTypeError) Error() string {
	return fmt.Sprintf("dropio: unknown asset type %q", e.Value)
}
