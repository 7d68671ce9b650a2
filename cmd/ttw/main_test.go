package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/export"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/store"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true}, // no trailing newline
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirm(strings.NewReader(tt.answer), &out, "Import?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "answer %q", tt.answer)
		assert.Equal(t, "Import? [y/N] ", out.String())
	}
}

func TestHint(t *testing.T) {
	assert.Contains(t, hint(fmt.Errorf("read: %w", export.ErrInputFormat)), "check the file")
	assert.Contains(t, hint(fmt.Errorf("%w: boom", store.ErrStorage)), "ttw clear")
	assert.Empty(t, hint(fmt.Errorf("other")))
}

func TestColorizeSnippet(t *testing.T) {
	assert.Equal(t, "a "+sColorBoldRed+"b"+sColorReset+" c", colorizeSnippet("a >>>b<<< c"))
}
