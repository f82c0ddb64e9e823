package collyfetcher

import (
	"net/http"
	"net/http/httptrace"
	"sync/atomic"
	"time"
)

// timingTransport records time to first response byte. Each redirect hop
// overwrites the previous measurement so the final response wins.
type timingTransport struct {
	base http.RoundTripper
	ttfb atomic.Int64
}

func (t *timingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	trace := &httptrace.ClientTrace{
		GotFirstResponseByte: func() {
			t.ttfb.Store(int64(time.Since(start)))
		},
	}
	req = req.WithContext(httptrace.WithClientTrace(req.Context(), trace))
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

func (t *timingTransport) firstByte() time.Duration {
	return time.Duration(t.ttfb.Load())
}
