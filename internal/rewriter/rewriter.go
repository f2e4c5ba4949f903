// Package rewriter turns a news article into a child-friendly rewrite. The
// primary implementation calls an OpenAI-compatible chat API; Fallback is a
// deterministic text simplifier used when the API is unavailable or returns
// garbage.
package rewriter

import "context"

// Result is a rewrite of an article for a target comprehension age.
type Result struct {
	Title   string
	Content string
	Summary string
}

type Rewriter interface {
	Rewrite(ctx context.Context, title, content string, targetAge int) (*Result, error)
}
