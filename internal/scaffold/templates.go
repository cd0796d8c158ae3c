package scaffold

// skillTemplate is the built-in template for a new SKILL.md.
const skillTemplate = `---
name: {{.Name}}
description: {{.Description}}
invocation:{{range .Invocation}}
  - {{.}}{{end}}
---

# {{.Title}}

{{.Description}}

## When to use

Reach for this skill when a task involves {{.KeywordPhrase}}.

## Guidance

1. State the convention or approach this skill covers.
2. Show the shortest correct usage.
3. Call out the common mistakes.
{{if .WithReference}}
## See also

- [reference.md](reference.md)
{{- if .WithExamples}}
- [examples.md](examples.md)
{{- end}}
{{else if .WithExamples}}
## See also

- [examples.md](examples.md)
{{end}}`

// referenceTemplate is the built-in template for a reference.md companion.
const referenceTemplate = `# {{.Title}} Reference

Exhaustive detail supporting the {{.Name}} skill: APIs, tables, and
edge cases too long for SKILL.md.
`

// examplesTemplate is the built-in template for an examples.md companion.
const examplesTemplate = `# {{.Title}} Examples

Worked examples for the {{.Name}} skill.

## Example

` + "```text" + `
TODO: replace with a real worked example
` + "```" + `
`

// standardTemplate is the built-in template for a new standard document.
const standardTemplate = `# {{.Title}}

{{.Description}}

## Scope

## Rules

## Exceptions
`
