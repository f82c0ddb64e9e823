package extract

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/sitegrade/internal/document"
	"github.com/JakeFAU/sitegrade/internal/grader"
)

const richPage = `<!doctype html>
<html lang="en">
<head>
  <title>Rich</title>
  <meta name="viewport" content="width=device-width">
  <meta name="description" content="a rich page">
  <link rel="canonical" href="https://example.com/">
  <style>body { font-family: Arial; } @media (prefers-color-scheme: dark) { body { color: #fff; } }</style>
</head>
<body>
  <header role="banner"></header>
  <nav role="navigation"></nav>
  <main role="main">
    <article>
      <section>
        <h1>Title</h1>
        <h2>Sub</h2>
        <ul><li>item</li></ul>
        <strong>bold</strong>
        <figure><img src="a.png" alt="a"></figure>
      </section>
    </article>
    <aside></aside>
  </main>
  <footer role="contentinfo"></footer>
  <picture><source srcset="a.webp"></picture>
</body>
</html>`

func mustParse(t *testing.T, markup string) grader.Document {
	t.Helper()
	doc, err := document.NewParser().Parse([]byte(markup))
	require.NoError(t, err)
	return doc
}

func TestLadderRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ladder Ladder
		value  float64
		want   float64
	}{
		{"load fast", LoadTimeLadder, 0.05, 2},
		{"load on first threshold", LoadTimeLadder, 1, 2},
		{"load just above first", LoadTimeLadder, 1.01, 4},
		{"load on last threshold", LoadTimeLadder, 5, 10},
		{"load above all", LoadTimeLadder, 9, 10},
		{"size small", ResponseSizeLadder, 0.5, 10},
		{"size on first threshold", ResponseSizeLadder, 1, 10},
		{"size second tier", ResponseSizeLadder, 1.5, 8},
		{"size last tier", ResponseSizeLadder, 20, 2},
		{"size above all", ResponseSizeLadder, 21, 0},
		{"ttfb fast", TTFBLadder, 0.05, 10},
		{"ttfb second tier", TTFBLadder, 0.2, 8},
		{"ttfb on last threshold", TTFBLadder, 1, 2},
		{"ttfb above all", TTFBLadder, 1.5, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.ladder.Rate(tt.value))
		})
	}
}

func TestPerformanceFastGzipPage(t *testing.T) {
	t.Parallel()

	resp := grader.FetchResponse{
		Headers: http.Header{"Content-Encoding": {"gzip"}},
		Body:    make([]byte, 500*1024),
		TTFB:    50 * time.Millisecond,
	}
	got := Performance(resp, 50*time.Millisecond)

	assert.Equal(t, grader.MetricGroup{
		MetricLoadTime:     2,
		MetricResponseSize: 10,
		MetricTTFB:         10,
		MetricCompression:  10,
	}, got)
}

func TestPerformanceTTFBFallsBackToLoadTime(t *testing.T) {
	t.Parallel()

	got := Performance(grader.FetchResponse{Body: []byte("x")}, 2*time.Second)
	assert.Equal(t, 0.0, got[MetricTTFB])
	assert.Equal(t, 4.0, got[MetricLoadTime])
	assert.Equal(t, 0.0, got[MetricCompression])
}

func TestImgAlt(t *testing.T) {
	t.Parallel()

	none := mustParse(t, "<html><body><p>no images</p></body></html>")
	assert.Equal(t, 10.0, SEO(none)[MetricImgAlt])

	partial := mustParse(t, `<html><body>
		<img src="1.png" alt="one">
		<img src="2.png" alt="two">
		<img src="3.png" alt="">
	</body></html>`)
	assert.Equal(t, 6.67, SEO(partial)[MetricImgAlt])
	assert.Equal(t, 6.67, Accessibility(partial)[MetricAltTexts])
}

func TestRichPageMetrics(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, richPage)

	assert.Equal(t, grader.MetricGroup{
		MetricColorContrast:    10,
		MetricTypography:       7,
		MetricLayoutStructure:  10,
		MetricResponsiveDesign: 10,
		MetricVisualHierarchy:  10,
	}, Design(doc))

	assert.Equal(t, grader.MetricGroup{
		MetricTitle:           10,
		MetricMetaDescription: 10,
		MetricHeadings:        4,
		MetricImgAlt:          10,
		MetricCanonical:       10,
	}, SEO(doc))

	assert.Equal(t, grader.MetricGroup{
		MetricLangAttribute:    10,
		MetricAriaLandmarks:    8,
		MetricFormLabels:       10,
		MetricAltTexts:         10,
		MetricHeadingStructure: 4,
	}, Accessibility(doc))
}

func TestBarePageMetrics(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "<p>plain</p>")

	for name, v := range Design(doc) {
		assert.Zero(t, v, name)
	}
	seo := SEO(doc)
	assert.Zero(t, seo[MetricTitle])
	assert.Zero(t, seo[MetricHeadings])
	assert.Equal(t, 10.0, seo[MetricImgAlt])

	acc := Accessibility(doc)
	assert.Zero(t, acc[MetricLangAttribute])
	assert.Equal(t, 10.0, acc[MetricFormLabels])
}

func TestTypographyCountsDistinctElements(t *testing.T) {
	t.Parallel()

	dup := mustParse(t, `<html><head>
		<style>p { font-family: serif; }</style>
		<style>p { font-family: serif; }</style>
	</head><body></body></html>`)
	assert.Equal(t, 2.0, Design(dup)[MetricTypography])

	many := mustParse(t, `<html><head>
		<style>a { font-family: serif; }</style>
		<style>b { font-family: serif; }</style>
		<style>c { font-family: serif; }</style>
	</head><body><h3>x</h3></body></html>`)
	assert.Equal(t, 10.0, Design(many)[MetricTypography])
}

func TestLayoutStructureCapsAtTen(t *testing.T) {
	t.Parallel()

	partial := mustParse(t, "<header></header><main></main>")
	assert.Equal(t, 3.0, Design(partial)[MetricLayoutStructure])
}

func TestFormLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   float64
	}{
		{"no forms", "<p>x</p>", 10},
		{"missing label", `<form><label>a</label><input><input></form>`, 0},
		{"labelled form", `<form><label>a</label><input></form>`, 5},
		{"form without fields", `<form><label>a</label></form>`, 0},
		{
			"capped",
			`<form><label>a</label><input></form>
			 <form><label>b</label><select></select></form>
			 <form><label>c</label><textarea></textarea></form>`,
			10,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Accessibility(mustParse(t, tt.markup))[MetricFormLabels])
		})
	}
}

func TestAriaLandmarksCap(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<div role="a"></div><div role="b"></div><div role="c"></div>
		<div role="d"></div><div role="e"></div><div role="f"></div>`)
	assert.Equal(t, 10.0, Accessibility(doc)[MetricAriaLandmarks])
}

func TestExtractCoversEveryMetricWithinBounds(t *testing.T) {
	t.Parallel()

	metrics := New().Extract(Input{
		Response: grader.FetchResponse{Body: []byte(richPage)},
		LoadTime: 700 * time.Millisecond,
		Document: mustParse(t, richPage),
	})
	for _, category := range grader.Categories {
		group := metrics.Group(category)
		require.Len(t, group, len(MetricNames[category]), category)
		for _, name := range MetricNames[category] {
			v, ok := group[name]
			require.True(t, ok, "%s missing %s", category, name)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 10.0)
		}
	}
}

func TestHasMetaMatchesLoosely(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<html><head>
		<meta name=" Viewport " content="width=device-width">
		<meta name="DESCRIPTION" content="mixed case">
	</head><body></body></html>`)
	assert.True(t, hasMeta(doc, "viewport"))
	assert.True(t, hasMeta(doc, "description"))
	assert.False(t, hasMeta(doc, "robots"))
	assert.Equal(t, 10.0, SEO(doc)[MetricMetaDescription])
}
