package httpinfra

import (
	"net/http"
	"net/url"
	"strings"
)

// RoundTripperWithAuth stamps the installer's headers on every request.
// Requests to the API host also get the GitHub media type and, when a
// token is configured, an Authorization header. Download hosts never see
// the token.
type RoundTripperWithAuth struct {
	base    http.RoundTripper
	common  map[string]string
	api     map[string]string
	apiHost string
}

// NewRoundTripperWithAuth creates the transport. apiURL selects which host
// receives the API headers; an empty token sends anonymous requests.
func NewRoundTripperWithAuth(base http.RoundTripper, userAgent, apiURL, token string) *RoundTripperWithAuth {
	if base == nil {
		base = http.DefaultTransport
	}
	t := &RoundTripperWithAuth{
		base:   base,
		common: commonHeaders(userAgent),
		api:    MergeHeaders(commonHeaders(userAgent), apiHeaders(token)),
	}
	if u, err := url.Parse(apiURL); err == nil {
		t.apiHost = strings.ToLower(u.Host)
	}
	return t
}

func (t *RoundTripperWithAuth) RoundTrip(req *http.Request) (*http.Response, error) {
	headers := t.common
	if t.apiHost != "" && strings.EqualFold(req.URL.Host, t.apiHost) {
		headers = t.api
	}

	newReq := req.Clone(req.Context())
	for k, v := range headers {
		newReq.Header.Set(k, v)
	}
	return t.base.RoundTrip(newReq)
}
