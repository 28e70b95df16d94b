// Package match filters text into the lines that contain a search term.
//
// Returned lines are substrings of the input; they share its memory and
// stay valid for as long as the caller holds them.
package match

import "strings"

// Lines splits contents on '\n'. A final terminator does not start an
// extra empty line and a '\r' immediately preceding '\n' is dropped.
// A lone '\r' at the end of an unterminated last line is kept.
func Lines(contents string) []string {
	if contents == "" {
		return nil
	}
	terminated := strings.HasSuffix(contents, "\n")
	contents = strings.TrimSuffix(contents, "\n")
	lines := strings.Split(contents, "\n")
	last := len(lines) - 1
	for i, l := range lines {
		if i < last || terminated {
			lines[i] = strings.TrimSuffix(l, "\r")
		}
	}
	return lines
}

// Search returns the lines of contents containing search, in order.
func Search(search, contents string) []string {
	var results []string
	for _, line := range Lines(contents) {
		if strings.Contains(line, search) {
			results = append(results, line)
		}
	}
	return results
}

// SearchCaseInsensitive is Search with both sides lowercased before the
// containment test. The original line text is returned.
func SearchCaseInsensitive(search, contents string) []string {
	search = strings.ToLower(search)

	var results []string
	for _, line := range Lines(contents) {
		if strings.Contains(strings.ToLower(line), search) {
			results = append(results, line)
		}
	}
	return results
}

// Find picks Search or SearchCaseInsensitive.
func Find(search, contents string, caseSensitive bool) []string {
	if caseSensitive {
		return Search(search, contents)
	}
	return SearchCaseInsensitive(search, contents)
}
