// Package ai turns post content into AI-authored titles, summaries and
// keyword tags.
//
// An Assistant builds prompts and normalizes replies; the actual call goes
// through a Backend chosen at startup (OpenAI, Anthropic, Gemini, or an
// offline mock).
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Assistant generates draft metadata through a Backend.
type Assistant struct {
	backend Backend
}

// NewAssistant creates an Assistant that sends every prompt to backend.
func NewAssistant(backend Backend) *Assistant {
	return &Assistant{backend: backend}
}

// GenerateTitle returns a single suggested title for content.
func (a *Assistant) GenerateTitle(ctx context.Context, content string) (string, error) {
	return a.complete(ctx, "title", TitlePrompt(content))
}

// GenerateSummary returns a short summary of content.
func (a *Assistant) GenerateSummary(ctx context.Context, content string) (string, error) {
	return a.complete(ctx, "summary", SummaryPrompt(content))
}

// GenerateKeywords returns the tags suggested for content and an optional
// title, in the order the backend listed them.
func (a *Assistant) GenerateKeywords(ctx context.Context, content, title string) ([]string, error) {
	reply, err := a.complete(ctx, "keywords", KeywordsPrompt(content, title))
	if err != nil {
		return nil, err
	}
	return ParseKeywords(reply), nil
}

// Fields selects which pieces of metadata Suggest generates.
type Fields struct {
	Title    bool
	Summary  bool
	Keywords bool
}

// Suggestions holds generated metadata. Fields that were not requested are
// left empty.
type Suggestions struct {
	Title    string   `json:"title,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Suggest generates the requested fields. The summary is generated
// concurrently with the title; keywords wait for the title so they can use
// it (or use title when no new title is requested). Any failure fails the
// whole call and no partial result is returned.
func (a *Assistant) Suggest(ctx context.Context, content, title string, want Fields) (*Suggestions, error) {
	var s Suggestions
	g, gctx := errgroup.WithContext(ctx)

	if want.Summary {
		g.Go(func() error {
			summary, err := a.GenerateSummary(gctx, content)
			s.Summary = summary
			return err
		})
	}

	if want.Title || want.Keywords {
		g.Go(func() error {
			keywordTitle := title
			if want.Title {
				generated, err := a.GenerateTitle(gctx, content)
				if err != nil {
					return err
				}
				s.Title = generated
				keywordTitle = generated
			}
			if want.Keywords {
				keywords, err := a.GenerateKeywords(gctx, content, keywordTitle)
				if err != nil {
					return err
				}
				s.Keywords = keywords
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *Assistant) complete(ctx context.Context, what, prompt string) (string, error) {
	reply, err := a.backend.Complete(ctx, prompt)
	if err != nil {
		slog.Error("AI completion failed", "kind", what, "error", err)
		return "", fmt.Errorf("generating %s: %w", what, err)
	}
	return strings.TrimSpace(reply), nil
}
