// Package export serializes corpus catalogs for machine consumption or
// human-readable summaries.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skilldex/skilldex/internal/corpus"
	"github.com/skilldex/skilldex/internal/logging"
	"github.com/skilldex/skilldex/internal/model"
)

// Format represents the output format for an exported catalog.
type Format string

const (
	// FormatJSON exports the catalog as JSON.
	FormatJSON Format = "json"
	// FormatYAML exports the catalog as YAML.
	FormatYAML Format = "yaml"
	// FormatMarkdown exports the catalog as a Markdown index.
	FormatMarkdown Format = "markdown"
)

// IsValid returns true if the format is recognized.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatMarkdown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// AllFormats returns all supported export formats.
func AllFormats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatMarkdown}
}

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	if !format.IsValid() {
		return "", fmt.Errorf("unsupported format %q (valid: json, yaml, markdown)", s)
	}
	return format, nil
}

// Options configures export behavior.
type Options struct {
	// Format specifies the output format.
	Format Format
	// Pretty enables pretty-printing for JSON/YAML.
	Pretty bool
	// IncludeContent includes full document bodies in the export.
	IncludeContent bool
	// Kind filters the catalog to one document kind (zero value means both).
	Kind model.DocKind
}

// DefaultOptions returns the default export options.
func DefaultOptions() Options {
	return Options{
		Format: FormatJSON,
		Pretty: true,
	}
}

// Exporter writes a corpus catalog in the configured format.
type Exporter struct {
	opts Options
}

// New creates a new Exporter with the given options.
func New(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export writes the catalog for the given corpus to w.
func (e *Exporter) Export(c *corpus.Corpus, w io.Writer) error {
	defer logging.Timer("export")()

	logging.Debug("starting export",
		slog.String("format", string(e.opts.Format)),
		logging.Count(len(c.Skills)+len(c.Standards)),
		logging.Operation("export"),
	)

	catalog := e.toCatalog(c)

	var err error
	switch e.opts.Format {
	case FormatJSON:
		err = e.exportJSON(catalog, w)
	case FormatYAML:
		err = e.exportYAML(catalog, w)
	case FormatMarkdown:
		err = e.exportMarkdown(catalog, w)
	default:
		err = fmt.Errorf("unsupported format: %s", e.opts.Format)
	}

	if err != nil {
		logging.Error("export failed",
			slog.String("format", string(e.opts.Format)),
			logging.Err(err),
		)
		return err
	}

	logging.Info("export completed",
		slog.String("format", string(e.opts.Format)),
		logging.Count(len(catalog.Skills)+len(catalog.Standards)),
	)

	return nil
}

// ExportSkill writes a single skill entry to w.
func (e *Exporter) ExportSkill(skill model.Skill, w io.Writer) error {
	catalog := catalogDoc{
		Root:   skill.Dir,
		Skills: []skillEntry{e.toSkillEntry(skill)},
	}

	switch e.opts.Format {
	case FormatJSON:
		return e.exportJSON(catalog, w)
	case FormatYAML:
		return e.exportYAML(catalog, w)
	case FormatMarkdown:
		return e.exportMarkdown(catalog, w)
	default:
		return fmt.Errorf("unsupported format: %s", e.opts.Format)
	}
}

// catalogDoc is the export representation of a corpus.
type catalogDoc struct {
	Root      string          `json:"root" yaml:"root"`
	Skills    []skillEntry    `json:"skills,omitempty" yaml:"skills,omitempty"`
	Standards []standardEntry `json:"standards,omitempty" yaml:"standards,omitempty"`
}

// skillEntry is the export representation of a single skill.
type skillEntry struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Invocation  []string          `json:"invocation,omitempty" yaml:"invocation,omitempty"`
	Path        string            `json:"path" yaml:"path"`
	Companions  []string          `json:"companions,omitempty" yaml:"companions,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Content     string            `json:"content,omitempty" yaml:"content,omitempty"`
	ModifiedAt  string            `json:"modified_at,omitempty" yaml:"modified_at,omitempty"`
}

// standardEntry is the export representation of a standard document.
type standardEntry struct {
	Title      string `json:"title" yaml:"title"`
	Section    string `json:"section,omitempty" yaml:"section,omitempty"`
	Path       string `json:"path" yaml:"path"`
	Content    string `json:"content,omitempty" yaml:"content,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty" yaml:"modified_at,omitempty"`
}

func (e *Exporter) toCatalog(c *corpus.Corpus) catalogDoc {
	catalog := catalogDoc{Root: c.Root}

	if e.opts.Kind == "" || e.opts.Kind == model.KindSkill {
		for _, skill := range c.Skills {
			catalog.Skills = append(catalog.Skills, e.toSkillEntry(skill))
		}
	}

	if e.opts.Kind == "" || e.opts.Kind == model.KindStandard {
		for _, doc := range c.Standards {
			entry := standardEntry{
				Title:   doc.DisplayTitle(),
				Section: doc.Section,
				Path:    doc.Path,
			}
			if e.opts.IncludeContent {
				entry.Content = doc.Content
				if !doc.ModifiedAt.IsZero() {
					entry.ModifiedAt = doc.ModifiedAt.Format("2006-01-02T15:04:05Z07:00")
				}
			}
			catalog.Standards = append(catalog.Standards, entry)
		}
	}

	return catalog
}

func (e *Exporter) toSkillEntry(skill model.Skill) skillEntry {
	entry := skillEntry{
		Name:        skill.Name,
		Description: skill.Description,
		Invocation:  skill.Invocation,
		Path:        skill.Path,
		Companions:  skill.Companions(),
	}

	if e.opts.IncludeContent {
		entry.Metadata = skill.Metadata
		entry.Content = skill.Content
		if !skill.ModifiedAt.IsZero() {
			entry.ModifiedAt = skill.ModifiedAt.Format("2006-01-02T15:04:05Z07:00")
		}
	}

	return entry
}

func (e *Exporter) exportJSON(catalog catalogDoc, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if e.opts.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(catalog)
}

func (e *Exporter) exportYAML(catalog catalogDoc, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	if e.opts.Pretty {
		encoder.SetIndent(2)
	}
	if err := encoder.Encode(catalog); err != nil {
		_ = encoder.Close()
		return err
	}
	return encoder.Close()
}

func (e *Exporter) exportMarkdown(catalog catalogDoc, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("# Corpus Catalog\n\n")
	sb.WriteString(fmt.Sprintf("%d skill(s), %d standard(s)\n\n",
		len(catalog.Skills), len(catalog.Standards)))

	if len(catalog.Skills) > 0 {
		sb.WriteString("## Skills\n\n")
		for _, entry := range catalog.Skills {
			sb.WriteString(formatMarkdownSkill(entry))
		}
	}

	if len(catalog.Standards) > 0 {
		sb.WriteString("## Standards\n\n")
		sb.WriteString("| Title | Section | Path |\n")
		sb.WriteString("|-------|---------|------|\n")
		for _, entry := range catalog.Standards {
			section := entry.Section
			if section == "" {
				section = "-"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | `%s` |\n",
				entry.Title, section, entry.Path))
		}
		sb.WriteString("\n")
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}

func formatMarkdownSkill(entry skillEntry) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("### %s\n\n", entry.Name))

	if entry.Description != "" {
		sb.WriteString(fmt.Sprintf("*%s*\n\n", entry.Description))
	}

	sb.WriteString("| Property | Value |\n")
	sb.WriteString("|----------|-------|\n")
	if len(entry.Invocation) > 0 {
		sb.WriteString(fmt.Sprintf("| Keywords | %s |\n", strings.Join(entry.Invocation, ", ")))
	}
	sb.WriteString(fmt.Sprintf("| Path | `%s` |\n", entry.Path))
	if len(entry.Companions) > 0 {
		sb.WriteString(fmt.Sprintf("| Companions | %s |\n", strings.Join(entry.Companions, ", ")))
	}
	if entry.ModifiedAt != "" {
		sb.WriteString(fmt.Sprintf("| Modified | %s |\n", entry.ModifiedAt))
	}
	sb.WriteString("\n")

	return sb.String()
}
