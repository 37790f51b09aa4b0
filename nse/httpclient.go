package nse

import (
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// NewTransport returns the transport shared by every session of a run.
// http.DefaultTransport is not used so dial and TLS waits stay bounded.
func NewTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
}

// newSession returns a client with an empty cookie jar. Each attempt gets
// its own so a stale or blocked cookie is never replayed.
func newSession(rt http.RoundTripper, timeout time.Duration) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &http.Client{Timeout: timeout, Transport: rt, Jar: jar}, nil
}
