// Package cleaner strips markup from posting text. Some boards feed the
// search API HTML fragments inside descriptions; classification operates on
// plain text.
package cleaner

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Cleaner sanitizes posting text with a strict bluemonday policy.
type Cleaner struct {
	policy *bluemonday.Policy
}

// New creates a cleaner that strips all HTML.
func New() *Cleaner {
	return &Cleaner{policy: bluemonday.StrictPolicy()}
}

// CleanText removes all markup and collapses the leftover blank runs.
func (c *Cleaner) CleanText(text string) string {
	out := c.policy.Sanitize(text)
	out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	return strings.TrimSpace(out)
}

// CleanPosting sanitizes the free-text fields of one raw posting field map
// in place. Only the long-text fields are touched; identifiers and the
// location string pass through untouched.
func (c *Cleaner) CleanPosting(raw map[string]any) {
	for _, key := range []string{"description", "title"} {
		if s, ok := raw[key].(string); ok {
			raw[key] = c.CleanText(s)
		}
	}
}
