package models

import "strings"

// Categories is the fixed backlink category vocabulary, in display order.
// Category names double as the project subcollection paths.
var Categories = []string{
	"Guest Posting",
	"Profile Creation",
	"Micro Blogging",
	"Directory Submission",
	"Social Bookmarks",
}

// CanonicalCategory matches a raw token against the vocabulary, ignoring
// case and surrounding whitespace, and returns the canonical form.
func CanonicalCategory(token string) (string, bool) {
	token = strings.TrimSpace(token)
	for _, c := range Categories {
		if strings.EqualFold(token, c) {
			return c, true
		}
	}
	return "", false
}

// IsCategory reports whether s is a canonical category name.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if s == c {
			return true
		}
	}
	return false
}
