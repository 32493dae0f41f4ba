package board

import (
	"context"
	"fmt"
	"strings"
)

// Translator maps text into the language identified by targetLang.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// StubTranslator does no linguistic work: it tags the text with the
// requested language so callers can see which translation was asked for.
type StubTranslator struct{}

func (StubTranslator) Translate(_ context.Context, text, targetLang string) (string, error) {
	if strings.TrimSpace(targetLang) == "" {
		return "", MissingFieldError{Fields: []string{"lang"}}
	}
	return fmt.Sprintf("[Translated to %s]: %s", targetLang, text), nil
}
