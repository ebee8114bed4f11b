package ai

import (
	"fmt"
	"regexp"
	"strings"
)

// Content is cut to these many runes before it is put in a prompt.
const (
	titleContentLimit    = 500
	summaryContentLimit  = 1000
	keywordsContentLimit = 500
)

// TitlePrompt asks for one catchy, SEO-friendly title.
func TitlePrompt(content string) string {
	return fmt.Sprintf(
		"Generate a catchy and SEO-friendly title for a blog post with the following content:\n\n%s...\n\nTitle:",
		truncateRunes(content, titleContentLimit),
	)
}

// SummaryPrompt asks for a 2-3 sentence summary.
func SummaryPrompt(content string) string {
	return fmt.Sprintf(
		"Summarize the following blog post in 2-3 sentences:\n\n%s...\n\nSummary:",
		truncateRunes(content, summaryContentLimit),
	)
}

// KeywordsPrompt asks for exactly 5 short tags. The title is mentioned only
// when non-empty.
func KeywordsPrompt(content, title string) string {
	var b strings.Builder
	b.WriteString("Generate exactly 5 relevant keywords or tags (one or two words each) for a blog post")
	if title != "" {
		b.WriteString(` titled "` + title + `"`)
	}
	b.WriteString(" with the following content:\n\n")
	b.WriteString(truncateRunes(content, keywordsContentLimit))
	b.WriteString("...\n\nKeywords:")
	return b.String()
}

var (
	keywordSeparators = regexp.MustCompile(`[,\n]`)
	ordinalPrefix     = regexp.MustCompile(`^\d+\.\s*`)
)

// ParseKeywords splits a keywords reply on commas and newlines, strips
// "N. " list numbering, and drops empty entries. Order is preserved.
func ParseKeywords(reply string) []string {
	keywords := []string{}
	for _, part := range keywordSeparators.Split(reply, -1) {
		kw := strings.TrimSpace(part)
		kw = strings.TrimSpace(ordinalPrefix.ReplaceAllString(kw, ""))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// truncateRunes returns at most n runes of s.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
