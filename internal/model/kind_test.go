package model

import "testing"

func TestParseKind(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    DocKind
		wantErr bool
	}{
		"skill":           {input: "skill", want: KindSkill},
		"standard":        {input: "standard", want: KindStandard},
		"uppercase":       {input: "SKILL", want: KindSkill},
		"whitespace":      {input: "  standard ", want: KindStandard},
		"alias skills":    {input: "skills", want: KindSkill},
		"alias standards": {input: "standards", want: KindStandard},
		"alias docs":      {input: "docs", want: KindStandard},
		"empty":           {input: "", wantErr: true},
		"unknown":         {input: "essay", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseKind(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDocKindIsValid(t *testing.T) {
	for _, k := range AllKinds() {
		if !k.IsValid() {
			t.Errorf("kind %q should be valid", k)
		}
	}
	if DocKind("essay").IsValid() {
		t.Error("unknown kind should not be valid")
	}
}

func TestDocKindDescription(t *testing.T) {
	for _, k := range AllKinds() {
		if k.Description() == "" || k.Description() == "Unknown document kind" {
			t.Errorf("kind %q has no description", k)
		}
	}
}
