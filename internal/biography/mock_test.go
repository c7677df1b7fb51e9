package biography

import (
	"context"

	"github.com/xaenox/biograph/internal/ai"
)

// fakeGenerator scripts oracle behavior per call.
type fakeGenerator struct {
	respond func(prompt string) (string, error)
	calls   int
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string, _ ai.GenerateOptions) (string, error) {
	f.calls++
	return f.respond(prompt)
}
