package httpclient

import "net/http"

// HTTPClient is the slice of *http.Client the HTTP-backed services depend
// on, so tests can substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
