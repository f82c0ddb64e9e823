package extract

import (
	"time"

	"github.com/JakeFAU/sitegrade/internal/grader"
)

// Metric names, grouped by category.
const (
	MetricLoadTime     = "load_time"
	MetricResponseSize = "response_size"
	MetricTTFB         = "ttfb"
	MetricCompression  = "compression"

	MetricColorContrast    = "color_contrast"
	MetricTypography       = "typography"
	MetricLayoutStructure  = "layout_structure"
	MetricResponsiveDesign = "responsive_design"
	MetricVisualHierarchy  = "visual_hierarchy"

	MetricTitle           = "title"
	MetricMetaDescription = "meta_description"
	MetricHeadings        = "headings"
	MetricImgAlt          = "img_alt"
	MetricCanonical       = "canonical"

	MetricLangAttribute    = "lang_attribute"
	MetricAriaLandmarks    = "aria_landmarks"
	MetricFormLabels       = "form_labels"
	MetricAltTexts         = "alt_texts"
	MetricHeadingStructure = "heading_structure"
)

// MetricNames lists every metric per category in report order.
var MetricNames = map[grader.Category][]string{
	grader.CategoryPerformance: {MetricLoadTime, MetricResponseSize, MetricTTFB, MetricCompression},
	grader.CategoryDesign: {
		MetricColorContrast, MetricTypography, MetricLayoutStructure,
		MetricResponsiveDesign, MetricVisualHierarchy,
	},
	grader.CategorySEO: {MetricTitle, MetricMetaDescription, MetricHeadings, MetricImgAlt, MetricCanonical},
	grader.CategoryAccessibility: {
		MetricLangAttribute, MetricAriaLandmarks, MetricFormLabels,
		MetricAltTexts, MetricHeadingStructure,
	},
}

// Input bundles what the extractor reads for one page.
type Input struct {
	Response grader.FetchResponse
	// LoadTime is the wall-clock fetch duration.
	LoadTime time.Duration
	Document grader.Document
}

// Extractor computes RawMetrics. It holds no state and is safe for concurrent use.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract computes all four metric groups.
func (e *Extractor) Extract(in Input) grader.RawMetrics {
	return grader.RawMetrics{
		Performance:   Performance(in.Response, in.LoadTime),
		Design:        Design(in.Document),
		SEO:           SEO(in.Document),
		Accessibility: Accessibility(in.Document),
	}
}

var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

func headingScore(doc grader.Document) float64 {
	count := len(doc.FindAll(headingTags...))
	if count == 0 {
		return 0
	}
	return min(float64(count*2), 10)
}

func imgAltScore(doc grader.Document) float64 {
	images := doc.FindAll("img")
	if len(images) == 0 {
		return 10
	}
	withAlt := 0
	for _, img := range images {
		if alt, ok := img.Attr("alt"); ok && alt != "" {
			withAlt++
		}
	}
	return grader.Round2(float64(withAlt) / float64(len(images)) * 10)
}

func presence(ok bool) float64 {
	if ok {
		return 10
	}
	return 0
}
