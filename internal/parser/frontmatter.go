// Package parser implements front-matter extraction and file discovery for
// the corpus file formats: SKILL.md guides and standard documents.
package parser

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Syntax identifies the front-matter encoding, derived from its delimiter.
type Syntax string

const (
	// SyntaxYAML is front matter fenced by --- lines.
	SyntaxYAML Syntax = "yaml"
	// SyntaxTOML is front matter fenced by +++ lines.
	SyntaxTOML Syntax = "toml"
)

var syntaxDelimiters = map[Syntax][]byte{
	SyntaxYAML: []byte("---"),
	SyntaxTOML: []byte("+++"),
}

// FrontmatterResult contains the extracted front matter and remaining body.
type FrontmatterResult struct {
	// Frontmatter contains the raw front-matter bytes.
	Frontmatter []byte
	// Syntax is the encoding implied by the delimiter found.
	Syntax Syntax
	// Content contains the document body after the front matter.
	Content string
	// HasFrontmatter indicates whether a complete fenced block was found.
	HasFrontmatter bool
}

// SplitFrontmatter extracts fenced front matter from document content.
// Both --- (YAML) and +++ (TOML) delimiters are recognized, and CRLF line
// endings are tolerated. An opening fence without a closing fence is treated
// as a document with no front matter.
func SplitFrontmatter(content []byte) FrontmatterResult {
	for syntax, delim := range syntaxDelimiters {
		opening := append(append([]byte{}, delim...), '\n')
		openingCRLF := append(append([]byte{}, delim...), '\r', '\n')
		if bytes.HasPrefix(content, opening) || bytes.HasPrefix(content, openingCRLF) {
			return extract(content, delim, syntax)
		}
	}

	return FrontmatterResult{Content: string(content)}
}

// extract pulls the block between the opening delimiter and the next
// delimiter line, returning the rest as body content.
func extract(content, delim []byte, syntax Syntax) FrontmatterResult {
	remaining := content[len(delim):]
	remaining = trimLeadingNewline(remaining)

	var block []byte
	bodyStart := -1

	if bytes.HasPrefix(remaining, delim) {
		// Empty front matter: the closing fence immediately follows.
		block = []byte{}
		bodyStart = len(delim)
	} else {
		for _, eol := range [][]byte{[]byte("\n"), []byte("\r\n")} {
			closing := append(append([]byte{}, eol...), delim...)
			if idx := bytes.Index(remaining, closing); idx != -1 {
				block = remaining[:idx]
				bodyStart = idx + len(closing)
				break
			}
		}
	}

	if bodyStart == -1 {
		// No closing fence; the whole document is body content.
		return FrontmatterResult{Content: string(content)}
	}

	block = bytes.ReplaceAll(block, []byte("\r\n"), []byte("\n"))
	block = bytes.TrimRight(block, "\r")

	var body string
	if bodyStart < len(remaining) {
		body = string(trimLeadingNewline(remaining[bodyStart:]))
	}

	return FrontmatterResult{
		Frontmatter:    block,
		Syntax:         syntax,
		Content:        body,
		HasFrontmatter: true,
	}
}

func trimLeadingNewline(b []byte) []byte {
	if bytes.HasPrefix(b, []byte("\r\n")) {
		return b[2:]
	}
	if bytes.HasPrefix(b, []byte("\n")) {
		return b[1:]
	}
	return b
}

// ParseFrontmatter decodes a front-matter block into a map according to the
// syntax its delimiter implied.
func ParseFrontmatter(result FrontmatterResult) (map[string]any, error) {
	switch result.Syntax {
	case SyntaxTOML:
		return ParseTOMLFrontmatter(result.Frontmatter)
	default:
		return ParseYAMLFrontmatter(result.Frontmatter)
	}
}

// ParseYAMLFrontmatter parses YAML front matter into a map.
func ParseYAMLFrontmatter(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return make(map[string]any), nil
	}

	var result map[string]any
	if err := yaml.Unmarshal(frontmatter, &result); err != nil {
		return nil, fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}
	if result == nil {
		result = make(map[string]any)
	}

	return result, nil
}

// ParseTOMLFrontmatter parses TOML front matter into a map.
func ParseTOMLFrontmatter(frontmatter []byte) (map[string]any, error) {
	result := make(map[string]any)
	if len(frontmatter) == 0 {
		return result, nil
	}

	if err := toml.Unmarshal(frontmatter, &result); err != nil {
		return nil, fmt.Errorf("failed to parse TOML frontmatter: %w", err)
	}

	return result, nil
}
