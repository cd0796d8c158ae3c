// Package scaffold generates new skill directories and standard documents
// that already satisfy the corpus conventions.
package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skilldex/skilldex/internal/corpus"
	"github.com/skilldex/skilldex/internal/logging"
	"github.com/skilldex/skilldex/internal/parser"
)

// Data holds the fields a new skill or standard is generated from.
type Data struct {
	// Name is the skill name (lowercase kebab-case).
	Name string
	// Description is the one-line front-matter description.
	Description string
	// Invocation lists the initial invocation keywords.
	Invocation []string
	// WithReference also creates a reference.md stub.
	WithReference bool
	// WithExamples also creates an examples.md stub.
	WithExamples bool
}

// Title derives the document heading from the kebab-case name.
func (d Data) Title() string {
	words := strings.ReplaceAll(d.Name, "-", " ")
	return cases.Title(language.English).String(words)
}

// KeywordPhrase joins the invocation keywords for prose use.
func (d Data) KeywordPhrase() string {
	return strings.Join(d.Invocation, ", ")
}

// Generator renders the built-in templates.
type Generator struct {
	templates map[string]*template.Template
}

// Template names accepted by Generate.
const (
	TemplateSkill     = "skill"
	TemplateReference = "reference"
	TemplateExamples  = "examples"
	TemplateStandard  = "standard"
)

// New creates a generator with the built-in templates parsed.
func New() (*Generator, error) {
	sources := map[string]string{
		TemplateSkill:     skillTemplate,
		TemplateReference: referenceTemplate,
		TemplateExamples:  examplesTemplate,
		TemplateStandard:  standardTemplate,
	}

	g := &Generator{templates: make(map[string]*template.Template, len(sources))}
	for name, src := range sources {
		tmpl, err := template.New(name).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		g.templates[name] = tmpl
	}
	return g, nil
}

// Generate renders one named template with the given data.
func (g *Generator) Generate(name string, data Data) (string, error) {
	tmpl, ok := g.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}

// validate checks the data before any file is written.
func validate(data Data) error {
	if err := parser.ValidateSkillName(data.Name); err != nil {
		return err
	}
	if strings.TrimSpace(data.Description) == "" {
		return fmt.Errorf("description must not be empty")
	}
	if len(data.Invocation) == 0 {
		return fmt.Errorf("at least one invocation keyword is required")
	}
	for _, k := range data.Invocation {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("invocation keywords must not be blank")
		}
	}
	return nil
}

// CreateSkill writes a new skill directory under skillsDir. The generated
// SKILL.md passes the structural lint rules; companion stubs are created
// when requested. Fails if the skill directory already exists.
func (g *Generator) CreateSkill(skillsDir string, data Data) (string, error) {
	if err := validate(data); err != nil {
		return "", err
	}

	skillDir := filepath.Join(skillsDir, data.Name)
	if _, err := os.Stat(skillDir); err == nil {
		return "", fmt.Errorf("skill directory %q already exists", skillDir)
	}
	if err := os.MkdirAll(skillDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create skill directory: %w", err)
	}

	files := []struct {
		template string
		name     string
		enabled  bool
	}{
		{TemplateSkill, corpus.SkillFileName, true},
		{TemplateReference, corpus.ReferenceFileName, data.WithReference},
		{TemplateExamples, corpus.ExamplesFileName, data.WithExamples},
	}

	for _, f := range files {
		if !f.enabled {
			continue
		}
		content, err := g.Generate(f.template, data)
		if err != nil {
			return "", err
		}
		path := filepath.Join(skillDir, f.name)
		// #nosec G306 - generated docs should be readable by user
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}

	skillPath := filepath.Join(skillDir, corpus.SkillFileName)
	logging.Info("skill scaffolded",
		logging.Skill(data.Name),
		logging.Path(skillPath),
	)

	return skillPath, nil
}

// CreateStandard writes a new standard document at path. Fails if the file
// already exists.
func (g *Generator) CreateStandard(path string, data Data) error {
	if err := parser.ValidateSkillName(data.Name); err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("standard document %q already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create standards directory: %w", err)
	}

	content, err := g.Generate(TemplateStandard, data)
	if err != nil {
		return err
	}

	// #nosec G306 - generated docs should be readable by user
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write standard document: %w", err)
	}

	logging.Info("standard scaffolded", logging.Path(path))
	return nil
}
