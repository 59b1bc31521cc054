// Package plaintext canonicalises raw extracted text before chunking.
//
// The engine never parses binary formats; callers hand it already-extracted
// plain text (or per-page text) and this package puts it into canonical
// form: LF line endings, single spaces, at most one blank line.
package plaintext

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

var (
	spaceRuns = regexp.MustCompile(`[ \t]+`)
	blankRuns = regexp.MustCompile(`\n{3,}`)
)

// Normalise canonicalises text: CRLF becomes LF, runs of spaces and tabs
// collapse to one space, three or more consecutive newlines collapse to
// exactly two, and leading/trailing whitespace is trimmed.
//
// Normalise is pure and idempotent.
func Normalise(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// SplitPages splits form-feed separated text into pages with 1-based page
// numbers. Text without a form feed yields a single page.
func SplitPages(text string) []domain.PageContent {
	parts := strings.Split(text, "\f")
	pages := make([]domain.PageContent, 0, len(parts))
	for i, part := range parts {
		pages = append(pages, domain.PageContent{
			PageNumber: i + 1,
			Text:       part,
		})
	}
	return pages
}
