// Package document implements the grader document query surface on top of goquery.
package document

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/sitegrade/internal/grader"
)

// htmlTag matches an opening html tag in raw markup. The HTML parser
// synthesizes an html element for fragments, so its tree cannot tell them apart.
var htmlTag = regexp.MustCompile(`(?i)<html[\s>/]`)

// Parser builds goquery-backed documents.
type Parser struct{}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses raw markup. Blank input yields grader.ErrEmptyDocument.
func (p *Parser) Parse(body []byte) (grader.Document, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, grader.ErrEmptyDocument
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc, raw: string(body), hasRoot: htmlTag.Match(body)}, nil
}

// Document wraps a goquery document together with its raw markup.
type Document struct {
	doc     *goquery.Document
	raw     string
	hasRoot bool
}

// Root returns the html element. Fragments without an html tag have no root.
func (d *Document) Root() (grader.Element, bool) {
	if !d.hasRoot {
		return nil, false
	}
	return d.First("html")
}

// First returns the first element with the given tag.
func (d *Document) First(tag string) (grader.Element, bool) {
	if tag == "" {
		return nil, false
	}
	sel := d.doc.Find(tag).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return element{sel: sel}, true
}

// FindAll returns every element matching any of the tags.
func (d *Document) FindAll(tags ...string) []grader.Element {
	selector := tagSelector(tags)
	if selector == "" {
		return nil
	}
	return collect(d.doc.Find(selector))
}

// WithAttr returns every element carrying the attribute.
func (d *Document) WithAttr(name string) []grader.Element {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return collect(d.doc.Find("[" + name + "]"))
}

// Contains reports whether the raw markup contains substr.
func (d *Document) Contains(substr string) bool {
	return strings.Contains(d.raw, substr)
}

type element struct {
	sel *goquery.Selection
}

func (e element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e element) FindAll(tags ...string) []grader.Element {
	selector := tagSelector(tags)
	if selector == "" {
		return nil
	}
	return collect(e.sel.Find(selector))
}

func (e element) Markup() string {
	html, err := goquery.OuterHtml(e.sel)
	if err != nil {
		return ""
	}
	return html
}

func tagSelector(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			parts = append(parts, tag)
		}
	}
	return strings.Join(parts, ", ")
}

func collect(sel *goquery.Selection) []grader.Element {
	out := make([]grader.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, element{sel: s})
	})
	return out
}
