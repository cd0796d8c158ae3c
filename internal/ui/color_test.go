package ui

import (
	"strings"
	"testing"
)

func TestStatusHelpers(t *testing.T) {
	// Disable colors so we can assert on plain text.
	DisableColors()
	defer EnableColors()

	tests := map[string]struct {
		fn     func(string) string
		msg    string
		want   string
		symbol string
	}{
		"pass with message":    {fn: StatusPass, msg: "ok", symbol: SymbolPass},
		"fail with message":    {fn: StatusFail, msg: "bad", symbol: SymbolFail},
		"warning with message": {fn: StatusWarning, msg: "careful", symbol: SymbolWarning},
		"skipped with message": {fn: StatusSkipped, msg: "later", symbol: SymbolSkipped},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.fn(tt.msg)
			if !strings.HasPrefix(got, tt.symbol) {
				t.Errorf("output %q does not start with symbol %q", got, tt.symbol)
			}
			if !strings.HasSuffix(got, tt.msg) {
				t.Errorf("output %q does not end with message %q", got, tt.msg)
			}
		})
	}
}

func TestStatusHelpersEmptyMessage(t *testing.T) {
	DisableColors()
	defer EnableColors()

	if got := StatusPass(""); got != SymbolPass {
		t.Errorf("StatusPass(\"\") = %q, want %q", got, SymbolPass)
	}
	if got := StatusFail(""); got != SymbolFail {
		t.Errorf("StatusFail(\"\") = %q, want %q", got, SymbolFail)
	}
}

func TestColorToggle(t *testing.T) {
	DisableColors()
	if IsColorEnabled() {
		t.Error("colors should be disabled")
	}
	EnableColors()
	if !IsColorEnabled() {
		t.Error("colors should be enabled")
	}
}
