// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/scholarag/pkg/types"
)

// maxTitleChars caps the sanitized title portion of a filename.
const maxTitleChars = 50

// Filename returns "{year}_{sanitized title}.pdf" for a paper. Every
// character of the title outside [0-9A-Za-z] becomes an underscore and the
// result is cut to 50 characters before the suffix.
func Filename(p types.PaperRecord) string {
	return fmt.Sprintf("%d_%s.pdf", p.Year, sanitizeTitle(p.Title))
}

// sanitizeTitle replaces every non-alphanumeric character with an
// underscore and truncates to maxTitleChars.
func sanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if len(s) > maxTitleChars {
		s = s[:maxTitleChars]
	}
	return s
}
