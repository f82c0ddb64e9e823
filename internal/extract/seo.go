package extract

import (
	"strings"

	"github.com/JakeFAU/sitegrade/internal/grader"
)

// SEO scores on-page search engine basics.
func SEO(doc grader.Document) grader.MetricGroup {
	_, hasTitle := doc.First("title")
	return grader.MetricGroup{
		MetricTitle:           presence(hasTitle),
		MetricMetaDescription: presence(hasMeta(doc, "description")),
		MetricHeadings:        headingScore(doc),
		MetricImgAlt:          imgAltScore(doc),
		MetricCanonical:       presence(hasCanonical(doc)),
	}
}

func hasCanonical(doc grader.Document) bool {
	for _, el := range doc.FindAll("link") {
		rel, ok := el.Attr("rel")
		if !ok {
			continue
		}
		for _, token := range strings.Fields(rel) {
			if strings.EqualFold(token, "canonical") {
				return true
			}
		}
	}
	return false
}
