package ai

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"
)

// Compile-time interface check.
var _ Backend = (*MockBackend)(nil)

const (
	defaultMockMinDelay = 500 * time.Millisecond
	defaultMockMaxDelay = 1500 * time.Millisecond
)

var mockTitles = []string{
	"The Ultimate Guide to Modern Web Development",
	"10 Ways to Improve Your Coding Skills",
	"Understanding the Future of Technology",
	"How AI is Transforming Content Creation",
	"Best Practices for Frontend Development",
}

const mockSummary = "This article explores key concepts in web development and artificial intelligence, " +
	"highlighting how these technologies can be combined to create powerful applications. " +
	"The author shares practical insights on implementation strategies and best practices for developers."

var mockKeywordSets = [][]string{
	{"web development", "vue.js", "javascript", "frontend", "programming"},
	{"ai", "machine learning", "content creation", "technology", "automation"},
	{"blog writing", "web apps", "tutorial", "coding", "software"},
}

const mockFallback = "Generated content based on your request."

// MockBackend answers prompts offline from fixed response pools after a
// random delay. It lets the app run without credentials or network.
type MockBackend struct {
	minDelay time.Duration
	maxDelay time.Duration
	intN     func(n int) int
}

// NewMockBackend creates a MockBackend whose delay is drawn uniformly from
// [minDelay, maxDelay). Both zero selects the default 500ms-1500ms range;
// use a negative maxDelay to disable the delay.
func NewMockBackend(minDelay, maxDelay time.Duration) *MockBackend {
	if minDelay == 0 && maxDelay == 0 {
		minDelay, maxDelay = defaultMockMinDelay, defaultMockMaxDelay
	}
	if maxDelay < 0 {
		minDelay, maxDelay = 0, 0
	}
	return &MockBackend{
		minDelay: max(minDelay, 0),
		maxDelay: max(maxDelay, minDelay, 0),
		intN:     rand.IntN,
	}
}

// Complete picks a reply based on what the prompt's first line asks for.
func (m *MockBackend) Complete(ctx context.Context, prompt string) (string, error) {
	if err := m.sleep(ctx); err != nil {
		return "", &RequestError{Backend: ProviderMock, Err: err}
	}

	instruction, _, _ := strings.Cut(prompt, "\n")
	instruction = strings.ToLower(instruction)

	slog.Debug("using mock AI response", "instruction", instruction)

	switch {
	case strings.Contains(instruction, "keywords"):
		set := mockKeywordSets[m.intN(len(mockKeywordSets))]
		return strings.Join(set, ", "), nil
	case strings.Contains(instruction, "summar"):
		return mockSummary, nil
	case strings.Contains(instruction, "title"):
		return mockTitles[m.intN(len(mockTitles))], nil
	default:
		return mockFallback, nil
	}
}

func (m *MockBackend) sleep(ctx context.Context) error {
	d := m.minDelay
	if spread := m.maxDelay - m.minDelay; spread > 0 {
		d += time.Duration(rand.Int64N(int64(spread)))
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
