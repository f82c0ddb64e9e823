package extract

import (
	"strings"

	"github.com/JakeFAU/sitegrade/internal/grader"
)

// Accessibility scores language, landmark, label, alt text and heading signals.
func Accessibility(doc grader.Document) grader.MetricGroup {
	return grader.MetricGroup{
		MetricLangAttribute:    presence(hasLang(doc)),
		MetricAriaLandmarks:    min(float64(len(doc.WithAttr("role"))*2), 10),
		MetricFormLabels:       formLabels(doc),
		MetricAltTexts:         imgAltScore(doc),
		MetricHeadingStructure: headingScore(doc),
	}
}

func hasLang(doc grader.Document) bool {
	root, ok := doc.Root()
	if !ok {
		return false
	}
	lang, ok := root.Attr("lang")
	return ok && strings.TrimSpace(lang) != ""
}

// formLabels awards 5 per form whose fields are all matched by labels. A page
// without forms has nothing to label and scores 10.
func formLabels(doc grader.Document) float64 {
	forms := doc.FindAll("form")
	if len(forms) == 0 {
		return 10
	}
	score := 0.0
	for _, form := range forms {
		fields := form.FindAll("input", "select", "textarea")
		labels := form.FindAll("label")
		if len(fields) > 0 && len(fields) <= len(labels) {
			score += 5
		}
	}
	return min(score, 10)
}
