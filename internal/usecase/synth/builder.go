package synth

import (
	"context"
	"fmt"
	"strings"

	"fakedata/internal/domain/dataset"
	"fakedata/internal/infrastructure/textgen"
	"fakedata/internal/ports"
)

const (
	DefaultTemperature     = 0.7
	defaultMaxOutputTokens = 64
)

// Builder assembles table batches. Dependent tables take their parents' key
// columns explicitly; nothing is shared between calls.
type Builder struct {
	fields      *Fields
	text        ports.TextGenerator
	temperature float64
}

func NewBuilder(fields *Fields, text ports.TextGenerator, temperature float64) *Builder {
	if text == nil {
		text = textgen.Disabled{}
	}
	if temperature < 0 || temperature > 1 {
		temperature = DefaultTemperature
	}
	return &Builder{
		fields:      fields,
		text:        text,
		temperature: temperature,
	}
}

// enrich asks the text generator for a value and falls back to the domain
// default when the generator returns its sentinel or nothing at all.
func (b *Builder) enrich(ctx context.Context, prompt string, maxTokens int, fallback string) string {
	text := b.text.Generate(ctx, ports.TextRequest{
		Prompt:          prompt,
		MaxOutputTokens: maxTokens,
		Temperature:     b.temperature,
	})
	text = strings.TrimSpace(text)
	if text == "" || text == ports.TextFallback {
		return fallback
	}
	return text
}

func requireKeys(n int, columns ...keyColumn) error {
	if n <= 0 {
		return nil
	}
	for _, col := range columns {
		if len(col.keys) == 0 {
			return fmt.Errorf("%w: %s", dataset.ErrNoParentKeys, col.name)
		}
	}
	return nil
}

type keyColumn struct {
	name string
	keys []string
}
