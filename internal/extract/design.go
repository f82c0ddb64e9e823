package extract

import (
	"strings"

	"github.com/JakeFAU/sitegrade/internal/grader"
)

var landmarkTags = []string{"header", "nav", "main", "article", "section", "aside", "footer"}

// Design scores markup signals of deliberate visual design.
func Design(doc grader.Document) grader.MetricGroup {
	return grader.MetricGroup{
		MetricColorContrast:    colorContrast(doc),
		MetricTypography:       typography(doc),
		MetricLayoutStructure:  layoutStructure(doc),
		MetricResponsiveDesign: responsiveDesign(doc),
		MetricVisualHierarchy:  visualHierarchy(doc),
	}
}

func colorContrast(doc grader.Document) float64 {
	score := 0.0
	if len(doc.FindAll("style", "link")) > 0 {
		score += 5
	}
	if doc.Contains("prefers-color-scheme") {
		score += 5
	}
	return score
}

func typography(doc grader.Document) float64 {
	fonts := make(map[string]struct{})
	for _, el := range doc.FindAll("style", "link") {
		markup := el.Markup()
		if strings.Contains(markup, "font-family") {
			fonts[markup] = struct{}{}
		}
	}
	score := min(float64(len(fonts)*2), 5)
	if len(doc.FindAll(headingTags...)) > 0 {
		score += 5
	}
	return score
}

func layoutStructure(doc grader.Document) float64 {
	score := 0.0
	for _, tag := range landmarkTags {
		if _, ok := doc.First(tag); ok {
			score += 1.5
		}
	}
	return min(score, 10)
}

func responsiveDesign(doc grader.Document) float64 {
	score := 0.0
	if hasMeta(doc, "viewport") {
		score += 4
	}
	if doc.Contains("@media") {
		score += 3
	}
	if len(doc.FindAll("picture", "source")) > 0 {
		score += 3
	}
	return score
}

func visualHierarchy(doc grader.Document) float64 {
	score := 0.0
	if _, ok := doc.First("h1"); ok {
		score += 3
	}
	if len(doc.FindAll("ul", "ol")) > 0 {
		score += 2
	}
	if len(doc.FindAll("strong", "em")) > 0 {
		score += 2
	}
	if len(doc.FindAll("blockquote", "figure")) > 0 {
		score += 3
	}
	return score
}

// hasMeta matches the name attribute case-insensitively and ignores
// surrounding whitespace, so name=" Viewport " counts as viewport.
func hasMeta(doc grader.Document, name string) bool {
	for _, el := range doc.FindAll("meta") {
		if v, ok := el.Attr("name"); ok && strings.EqualFold(strings.TrimSpace(v), name) {
			return true
		}
	}
	return false
}
