package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalPromptConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"yes_word", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"no_word", "No\n", true, false},
		{"empty_default_no", "\n", false, false},
		{"empty_default_yes", "\n", true, true},
		{"eof_default_no", "", false, false},
		{"eof_default_yes", "", true, true},
		{"reask_after_garbage", "maybe\ny\n", false, true},
		{"garbage_then_eof_uses_default", "maybe\n", false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out strings.Builder
			p := &TerminalPrompt{In: strings.NewReader(tt.input), Out: &out}
			assert.Equal(t, tt.want, p.Confirm("Proceed?", tt.defaultYes))
		})
	}
}

func TestTerminalPromptConfirmReasksOnGarbage(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	p := &TerminalPrompt{In: strings.NewReader("what\nn\n"), Out: &out}
	assert.False(t, p.Confirm("Proceed?", true))
	assert.Contains(t, out.String(), "Invalid option. Please pick 'y' or 'n'.")
}

func TestTerminalPromptInput(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	p := &TerminalPrompt{In: strings.NewReader("  some value  \n"), Out: &out}
	got, err := p.Input("Paste value:")
	require.NoError(t, err)
	assert.Equal(t, "some value", got)
	assert.Contains(t, out.String(), "Paste value:")
}

func TestScriptedPrompt(t *testing.T) {
	t.Parallel()

	p := &ScriptedPrompt{Answers: []string{"y", "", "token-123"}}
	assert.True(t, p.Confirm("first?", false))
	assert.False(t, p.Confirm("second?", false), "empty answer takes the default")

	got, err := p.Input("token:")
	require.NoError(t, err)
	assert.Equal(t, "token-123", got)

	_, err = p.Input("exhausted:")
	assert.Error(t, err)
	assert.True(t, p.Confirm("exhausted?", true), "exhausted answers take the default")
}
