package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/skilldex/skilldex/internal/model"
	"github.com/skilldex/skilldex/internal/parser"
)

// Companion file names defined by the corpus layout convention.
const (
	SkillFileName     = "SKILL.md"
	ReferenceFileName = "reference.md"
	ExamplesFileName  = "examples.md"
)

// ParseSkillFile parses a single SKILL.md file and inspects its directory
// for companion files.
func ParseSkillFile(filePath string) (model.Skill, error) {
	// #nosec G304 - filePath comes from directory discovery under the corpus root
	content, err := os.ReadFile(filePath)
	if err != nil {
		return model.Skill{}, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}

	skill, err := ParseSkillContent(content, filePath)
	if err != nil {
		return model.Skill{}, err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return model.Skill{}, fmt.Errorf("failed to stat file %q: %w", filePath, err)
	}
	skill.ModifiedAt = info.ModTime()

	inspectSkillDir(&skill)

	return skill, nil
}

// ParseSkillContent parses SKILL.md content from bytes. The skill name falls
// back to the parent directory name when the front matter omits it, so that
// lint can still report on the file by a usable identity.
func ParseSkillContent(content []byte, filePath string) (model.Skill, error) {
	result := parser.SplitFrontmatter(content)

	skill := model.Skill{
		Path:           filePath,
		Dir:            filepath.Dir(filePath),
		Metadata:       make(map[string]string),
		HasFrontmatter: result.HasFrontmatter,
	}

	if result.HasFrontmatter {
		fm, err := parser.ParseFrontmatter(result)
		if err != nil {
			return model.Skill{}, fmt.Errorf("failed to parse frontmatter in %q: %w", filePath, err)
		}

		skill.Name = extractString(fm, "name")
		skill.NameDeclared = skill.Name != ""
		skill.Description = extractString(fm, "description")
		skill.Invocation = extractStringSlice(fm, "invocation")

		// Remaining front-matter fields are retained as metadata.
		knownFields := map[string]bool{
			"name": true, "description": true, "invocation": true,
		}
		for key, val := range fm {
			if !knownFields[key] {
				if strVal, ok := val.(string); ok {
					skill.Metadata[key] = strVal
				} else {
					skill.Metadata[key] = fmt.Sprintf("%v", val)
				}
			}
		}
	}

	if skill.Name == "" {
		skill.Name = filepath.Base(skill.Dir)
	}

	skill.Content = parser.NormalizeContent(result.Content)

	return skill, nil
}

// inspectSkillDir records companion files and anything outside the layout
// convention in the skill's directory. It replaces any previously recorded
// directory facts, so it can refresh a skill restored from the parse cache.
func inspectSkillDir(skill *model.Skill) {
	skill.HasReference = false
	skill.HasExamples = false
	skill.ExtraFiles = nil

	entries, err := os.ReadDir(skill.Dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			skill.ExtraFiles = append(skill.ExtraFiles, entry.Name()+"/")
			continue
		}
		switch entry.Name() {
		case SkillFileName:
		case ReferenceFileName:
			skill.HasReference = true
		case ExamplesFileName:
			skill.HasExamples = true
		default:
			skill.ExtraFiles = append(skill.ExtraFiles, entry.Name())
		}
	}

	sort.Strings(skill.ExtraFiles)
}

// extractString extracts a string value from a front-matter map.
func extractString(fm map[string]any, key string) string {
	if val, ok := fm[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return ""
}

// extractStringSlice extracts a string slice from a front-matter map.
func extractStringSlice(fm map[string]any, key string) []string {
	val, ok := fm[key]
	if !ok {
		return nil
	}

	slice, ok := val.([]any)
	if !ok {
		return nil
	}

	result := make([]string, 0, len(slice))
	for _, item := range slice {
		if strVal, ok := item.(string); ok {
			result = append(result, strVal)
		} else {
			result = append(result, fmt.Sprintf("%v", item))
		}
	}
	return result
}
