package textgen

import (
	"context"
	"log/slog"
	"strings"

	"fakedata/internal/bootstrap/logging"
	"fakedata/internal/ports"
)

// Result is the outcome of one generation call: either text or the reason
// no text could be produced.
type Result struct {
	text   string
	reason string
	ok     bool
}

func Success(text string) Result {
	return Result{text: text, ok: true}
}

func Failure(reason string) Result {
	return Result{reason: reason}
}

func (r Result) Text() (string, bool) {
	return r.text, r.ok
}

func (r Result) Reason() string {
	return r.reason
}

// Resolve converts r to the public contract, logging failures.
func Resolve(ctx context.Context, provider string, r Result) string {
	if text, ok := r.Text(); ok {
		return text
	}
	logging.Warn(
		logging.WithComponent(ctx, "textgen"),
		"text generation failed",
		slog.String("provider", provider),
		slog.String("reason", r.Reason()),
	)
	return ports.TextFallback
}

// Snippet trims a response body for log output.
func Snippet(body []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}

// Disabled is used when enrichment is turned off or has no credentials.
type Disabled struct{}

var _ ports.TextGenerator = Disabled{}

func (Disabled) Generate(context.Context, ports.TextRequest) string {
	return ports.TextFallback
}
