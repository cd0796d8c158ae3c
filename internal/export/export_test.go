package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skilldex/skilldex/internal/corpus"
	"github.com/skilldex/skilldex/internal/model"
)

func testCorpus() *corpus.Corpus {
	return &corpus.Corpus{
		Root: "/corpus",
		Skills: []model.Skill{
			{
				Name:         "datetime",
				Description:  "Datetime handling conventions.",
				Invocation:   []string{"dates", "timezones"},
				Path:         "/corpus/skills/datetime/SKILL.md",
				Dir:          "/corpus/skills/datetime",
				Content:      "# Datetime\n\nBody.\n",
				ModifiedAt:   time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
				HasReference: true,
			},
			{
				Name:       "testing",
				Invocation: []string{"tests"},
				Path:       "/corpus/skills/testing/SKILL.md",
				Dir:        "/corpus/skills/testing",
			},
		},
		Standards: []model.Document{
			{
				Title:   "SOLID Principles",
				Section: "architecture",
				Path:    "/corpus/docs/developer/standard/architecture/solid.md",
				Content: "# SOLID Principles\n",
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    Format
		wantErr bool
	}{
		"json":       {input: "json", want: FormatJSON},
		"yaml":       {input: "yaml", want: FormatYAML},
		"markdown":   {input: "markdown", want: FormatMarkdown},
		"uppercase":  {input: "JSON", want: FormatJSON},
		"whitespace": {input: " yaml ", want: FormatYAML},
		"unknown":    {input: "xml", wantErr: true},
		"empty":      {input: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	exporter := New(Options{Format: FormatJSON, Pretty: true, IncludeContent: true})

	if err := exporter.Export(testCorpus(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	var catalog struct {
		Root   string `json:"root"`
		Skills []struct {
			Name       string   `json:"name"`
			Invocation []string `json:"invocation"`
			Companions []string `json:"companions"`
			Content    string   `json:"content"`
		} `json:"skills"`
		Standards []struct {
			Title   string `json:"title"`
			Section string `json:"section"`
		} `json:"standards"`
	}
	if err := json.Unmarshal(buf.Bytes(), &catalog); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if catalog.Root != "/corpus" {
		t.Errorf("root = %q", catalog.Root)
	}
	if len(catalog.Skills) != 2 || len(catalog.Standards) != 1 {
		t.Fatalf("entries = %d skills, %d standards", len(catalog.Skills), len(catalog.Standards))
	}
	if catalog.Skills[0].Name != "datetime" {
		t.Errorf("first skill = %q", catalog.Skills[0].Name)
	}
	if len(catalog.Skills[0].Companions) != 1 || catalog.Skills[0].Companions[0] != "reference.md" {
		t.Errorf("companions = %v", catalog.Skills[0].Companions)
	}
	if catalog.Skills[0].Content == "" {
		t.Error("content missing despite IncludeContent")
	}
	if catalog.Standards[0].Section != "architecture" {
		t.Errorf("section = %q", catalog.Standards[0].Section)
	}
}

func TestExportJSONWithoutContent(t *testing.T) {
	var buf bytes.Buffer
	exporter := New(Options{Format: FormatJSON})

	if err := exporter.Export(testCorpus(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	if strings.Contains(buf.String(), "# Datetime") {
		t.Error("content should be omitted without IncludeContent")
	}
}

func TestExportYAML(t *testing.T) {
	var buf bytes.Buffer
	exporter := New(Options{Format: FormatYAML, Pretty: true})

	if err := exporter.Export(testCorpus(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	var catalog map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &catalog); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if catalog["root"] != "/corpus" {
		t.Errorf("root = %v", catalog["root"])
	}
}

func TestExportMarkdown(t *testing.T) {
	var buf bytes.Buffer
	exporter := New(Options{Format: FormatMarkdown})

	if err := exporter.Export(testCorpus(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Corpus Catalog",
		"2 skill(s), 1 standard(s)",
		"### datetime",
		"| Keywords | dates, timezones |",
		"## Standards",
		"| SOLID Principles | architecture |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestExportKindFilter(t *testing.T) {
	tests := map[string]struct {
		kind          model.DocKind
		wantSkills    bool
		wantStandards bool
	}{
		"all":       {kind: "", wantSkills: true, wantStandards: true},
		"skills":    {kind: model.KindSkill, wantSkills: true},
		"standards": {kind: model.KindStandard, wantStandards: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := New(Options{Format: FormatJSON, Kind: tt.kind})
			if err := exporter.Export(testCorpus(), &buf); err != nil {
				t.Fatalf("Export: %v", err)
			}

			out := buf.String()
			if got := strings.Contains(out, "datetime"); got != tt.wantSkills {
				t.Errorf("skills present = %v, want %v", got, tt.wantSkills)
			}
			if got := strings.Contains(out, "SOLID"); got != tt.wantStandards {
				t.Errorf("standards present = %v, want %v", got, tt.wantStandards)
			}
		})
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	exporter := New(Options{Format: Format("xml")})

	if err := exporter.Export(testCorpus(), &buf); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestExportSkill(t *testing.T) {
	var buf bytes.Buffer
	exporter := New(Options{Format: FormatJSON})
	skill := testCorpus().Skills[0]

	if err := exporter.ExportSkill(skill, &buf); err != nil {
		t.Fatalf("ExportSkill: %v", err)
	}
	if !strings.Contains(buf.String(), `"datetime"`) {
		t.Errorf("output missing skill name: %s", buf.String())
	}
}
