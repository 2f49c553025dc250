package model

import "regexp"

// ExtractReferences scans text for card reference tokens of the form
// <prefix>-<digits>. A token only counts when it is not immediately
// preceded or followed by a letter, underscore, or hyphen: "Sou-12"
// matches, "XSou-12" and "Sou-12x" do not. Matching is case-insensitive.
//
// The returned sequential IDs preserve first-occurrence order and
// duplicates; digits are kept as decimal strings (leading zeros intact).
func ExtractReferences(text, prefix string) []string {
	if text == "" || prefix == "" {
		return nil
	}

	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(prefix) + `-([0-9]+)`)

	var ids []string
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		// Boundary checks are zero-width so that adjacent references
		// separated by a single character all match, and a digit run
		// followed by a letter is rejected whole rather than shortened.
		if m[0] > 0 && breaksToken(text[m[0]-1]) {
			continue
		}
		if m[1] < len(text) && breaksToken(text[m[1]]) {
			continue
		}
		ids = append(ids, text[m[2]:m[3]])
	}
	return ids
}

// breaksToken reports whether the byte next to a candidate token glues
// onto it, ruling the candidate out. Non-ASCII bytes never qualify.
func breaksToken(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '-'
}
