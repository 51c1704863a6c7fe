// Package format reformats source files with external tools, selected by
// language tag. Formatting is best-effort: callers that go through Best or
// All always get usable content back.
package format

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jorge-barreto/monozip/internal/fileblocks"
)

// ErrEmptyOutput is returned when a tool exits cleanly but prints nothing.
var ErrEmptyOutput = errors.New("formatter produced no output")

// Formatter is the formatting capability. Tests can substitute a mock.
type Formatter interface {
	Format(ctx context.Context, lang, content string) (string, error)
}

// Func adapts a function to the Formatter interface.
type Func func(ctx context.Context, lang, content string) (string, error)

func (f Func) Format(ctx context.Context, lang, content string) (string, error) {
	return f(ctx, lang, content)
}

// Registry routes a language tag to the formatter registered for it.
// Tags without a formatter pass through unchanged.
type Registry struct {
	byLang map[string]Formatter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byLang: make(map[string]Formatter)}
}

// Register binds f to every tag in langs. Later registrations win.
func (r *Registry) Register(f Formatter, langs ...string) {
	for _, l := range langs {
		r.byLang[l] = f
	}
}

// Lookup returns the formatter for lang, if any.
func (r *Registry) Lookup(lang string) (Formatter, bool) {
	f, ok := r.byLang[lang]
	return f, ok
}

func (r *Registry) Format(ctx context.Context, lang, content string) (string, error) {
	f, ok := r.byLang[lang]
	if !ok {
		return content, nil
	}
	return f.Format(ctx, lang, content)
}

// Best formats content for the file at path and falls back to the original
// content on any failure, including a panic inside f.
func Best(ctx context.Context, f Formatter, log *zap.Logger, path, content string) (out string) {
	if f == nil {
		return content
	}
	if log == nil {
		log = zap.NewNop()
	}
	lang := fileblocks.LanguageTag(path)
	defer func() {
		if r := recover(); r != nil {
			log.Warn("formatter panicked", zap.String("path", path), zap.String("lang", lang), zap.Any("panic", r))
			out = content
		}
	}()

	formatted, err := f.Format(ctx, lang, content)
	if err != nil {
		log.Debug("formatting skipped", zap.String("path", path), zap.String("lang", lang), zap.Error(err))
		return content
	}
	if formatted == "" {
		log.Debug("formatting skipped", zap.String("path", path), zap.String("lang", lang), zap.Error(ErrEmptyOutput))
		return content
	}
	return formatted
}

// Stats counts how many files a batch actually changed.
type Stats struct {
	Formatted int
	Unchanged int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d formatted, %d unchanged", s.Formatted, s.Unchanged)
}
