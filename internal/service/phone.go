package service

import "regexp"

// Optional +CC prefix, a three digit group (optionally parenthesised), then
// three and four digit groups with optional space, dot or hyphen separators.
var phonePattern = regexp.MustCompile(`(\+\d{1,2}\s*)?(\(\d{3}\)|\d{3})[\s.-]?\d{3}[\s.-]?\d{4}`)

// ExtractPhoneNumbers returns every phone-shaped substring of text in order.
// Matches are syntactic only and duplicates are kept.
func ExtractPhoneNumbers(text string) []string {
	matches := phonePattern.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
