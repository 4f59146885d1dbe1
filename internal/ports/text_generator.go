package ports

import "context"

// TextFallback is returned by a TextGenerator when no usable text was produced.
// Callers substitute their own domain default when they see it.
const TextFallback = "N/A"

type TextRequest struct {
	Prompt          string
	MaxOutputTokens int
	Temperature     float64
}

// TextGenerator produces enrichment text. Implementations never fail: any
// transport or decoding problem is logged and reported as TextFallback.
type TextGenerator interface {
	Generate(ctx context.Context, req TextRequest) string
}
