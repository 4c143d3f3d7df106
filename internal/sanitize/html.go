package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy removes all HTML tags and attributes. Used for comment
	// text and event titles.
	strictPolicy = bluemonday.StrictPolicy()

	// ugcPolicy allows safe user-generated formatting (<p>, <b>, <i>,
	// <em>, <strong>, lists, links). Used for event descriptions.
	ugcPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML and trims surrounding whitespace.
func Text(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

// HTML sanitizes HTML content, keeping safe formatting tags while removing
// scripts, iframes and event handlers.
func HTML(input string) string {
	return ugcPolicy.Sanitize(input)
}
