package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_ContentFilter(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		allowed bool
	}{
		{"plain sentence", "Hello world!", true},
		{"all marks", "Really? Yes, really. Wow!", true},
		{"digits and whitespace", "12 apples\tand\n3 pears\r\n", true},
		{"non-ASCII letter", "héllo", false},
		{"emoji", "nice 👍", false},
		{"hyphen", "well-known", false},
		{"apostrophe", "don't", false},
		{"html", "<b>bold</b>", false},
		{"null byte", "a\x00b", false},
		{"non-breaking space", "a\u00a0b", true},
		{"ideographic space", "a\u3000b", true},
		{"line separator", "a\u2028b", true},
		{"byte order mark", "a\ufeffb", true},
		{"zero width space", "a\u200bb", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStore().Add(newComment(tc.text))
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbiddenContent)
			}
		})
	}
}

func TestNewValidator_RegistersTextTag(t *testing.T) {
	assert.NotPanics(t, func() {
		v := newValidator(DefaultAllowedText)
		assert.NoError(t, v.Var("plain text", textTag))
		assert.Error(t, v.Var("<b>", textTag))
	})
}
