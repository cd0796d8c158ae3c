// Package markdown provides read-only structural analysis of Markdown
// document bodies: headings, links, fenced code blocks, and tables.
// It parses with goldmark but never renders.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a Markdown heading with its level (1-6) and plain text.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// CodeBlock is a fenced code block with its info-string language tag.
// Line is the 1-based line of the opening fence; Language is empty when the
// fence carries no tag.
type CodeBlock struct {
	Language string `json:"language"`
	Line     int    `json:"line"`
}

// Analysis is the structural summary of a Markdown body.
type Analysis struct {
	Headings   []Heading   `json:"headings,omitempty"`
	Links      []string    `json:"links,omitempty"`
	CodeBlocks []CodeBlock `json:"code_blocks,omitempty"`
	HasTable   bool        `json:"has_table"`
}

var parser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// Analyze parses src and collects its structural elements.
func Analyze(src []byte) Analysis {
	var a Analysis

	doc := parser.Parser().Parse(text.NewReader(src))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			a.Headings = append(a.Headings, Heading{
				Level: node.Level,
				Text:  plainText(node, src),
			})
		case *ast.Link:
			a.Links = append(a.Links, string(node.Destination))
		case *ast.Image:
			a.Links = append(a.Links, string(node.Destination))
		case *ast.AutoLink:
			a.Links = append(a.Links, string(node.URL(src)))
		case *ast.FencedCodeBlock:
			a.CodeBlocks = append(a.CodeBlocks, CodeBlock{
				Language: string(node.Language(src)),
				Line:     fenceLine(node, src),
			})
		case *east.Table:
			a.HasTable = true
		}

		return ast.WalkContinue, nil
	})

	return a
}

// Title returns the text of the first level-1 heading, or "" if none.
func Title(src []byte) string {
	for _, h := range Analyze(src).Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

// IsRelativeLink reports whether a link destination points into the local
// file tree rather than to an external resource or an in-page anchor.
func IsRelativeLink(dest string) bool {
	if dest == "" {
		return false
	}
	if strings.HasPrefix(dest, "#") {
		return false
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
		return false
	}
	return true
}

// RelativeLinks filters an analysis's links down to local file references,
// with any fragment suffix stripped.
func (a Analysis) RelativeLinks() []string {
	var links []string
	for _, l := range a.Links {
		if !IsRelativeLink(l) {
			continue
		}
		if idx := strings.Index(l, "#"); idx != -1 {
			l = l[:idx]
		}
		if l != "" {
			links = append(links, l)
		}
	}
	return links
}

// plainText collects the raw text content beneath a node.
func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
		case *ast.String:
			sb.Write(t.Value)
		default:
			sb.WriteString(plainText(c, src))
		}
	}
	return sb.String()
}

// fenceLine computes the 1-based source line of a fenced code block's
// opening fence.
func fenceLine(node *ast.FencedCodeBlock, src []byte) int {
	// The node's first line segment starts after the opening fence, so count
	// newlines up to the segment start and subtract the fence line itself.
	lines := node.Lines()
	if lines.Len() == 0 {
		if node.Info != nil {
			return lineAt(src, node.Info.Segment.Start)
		}
		return 0
	}
	first := lines.At(0)
	return lineAt(src, first.Start) - 1
}

func lineAt(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	line := 1
	for _, b := range src[:offset] {
		if b == '\n' {
			line++
		}
	}
	return line
}
