package grader

import (
	"context"
	"time"
)

// Fetcher fetches a URL and returns the body plus timing metadata.
type Fetcher interface {
	Fetch(ctx context.Context, request FetchRequest) (FetchResponse, error)
}

// Parser turns raw markup into a queryable Document.
type Parser interface {
	Parse(body []byte) (Document, error)
}

// Document exposes the narrow query surface the metric extractor needs.
type Document interface {
	// Root returns the root html element.
	Root() (Element, bool)
	// First returns the first element with the given tag name.
	First(tag string) (Element, bool)
	// FindAll returns every element matching any of the tag names, in document order.
	FindAll(tags ...string) []Element
	// WithAttr returns every element carrying the attribute, whatever its value.
	WithAttr(name string) []Element
	// Contains reports whether the raw markup contains substr.
	Contains(substr string) bool
}

// Element is a single node returned from a Document query.
type Element interface {
	// Attr returns the attribute value and whether it is present.
	Attr(name string) (string, bool)
	// FindAll returns descendants matching any of the tag names.
	FindAll(tags ...string) []Element
	// Markup returns the serialized element including its children.
	Markup() string
}

// Analyzer produces exactly one SiteResult for a URL.
type Analyzer interface {
	Analyze(ctx context.Context, url string) SiteResult
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. Readings keep their monotonic component,
// so Sub between two of them ignores wall clock jumps.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// IDGenerator produces batch report IDs.
type IDGenerator interface {
	NewID() (string, error)
}

// Observer receives pipeline measurements. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveFetch(url string, statusCode int, bytes int, duration time.Duration)
	ObserveResult(result SiteResult)
	ObserveBatch(report BatchReport)
}

// NopObserver discards every observation.
type NopObserver struct{}

// ObserveFetch implements Observer.
func (NopObserver) ObserveFetch(string, int, int, time.Duration) {}

// ObserveResult implements Observer.
func (NopObserver) ObserveResult(SiteResult) {}

// ObserveBatch implements Observer.
func (NopObserver) ObserveBatch(BatchReport) {}
