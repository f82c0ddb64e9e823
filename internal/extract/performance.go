package extract

import (
	"strings"
	"time"

	"github.com/JakeFAU/sitegrade/internal/grader"
)

const bytesPerMB = 1024 * 1024

// Performance rates load time, response size, time to first byte and
// compression. A zero TTFB falls back to the load time.
func Performance(resp grader.FetchResponse, loadTime time.Duration) grader.MetricGroup {
	ttfb := resp.TTFB
	if ttfb <= 0 {
		ttfb = loadTime
	}
	return grader.MetricGroup{
		MetricLoadTime:     LoadTimeLadder.Rate(loadTime.Seconds()),
		MetricResponseSize: ResponseSizeLadder.Rate(float64(len(resp.Body)) / bytesPerMB),
		MetricTTFB:         TTFBLadder.Rate(ttfb.Seconds()),
		MetricCompression:  presence(isGzip(resp)),
	}
}

func isGzip(resp grader.FetchResponse) bool {
	if resp.Headers == nil {
		return false
	}
	return strings.Contains(strings.ToLower(resp.Headers.Get("Content-Encoding")), "gzip")
}
