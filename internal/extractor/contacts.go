// Package extractor finds Spanish phone numbers and e-mail addresses in free text.
package extractor

import (
	"regexp"
	"strings"
)

// minPhoneLength is the shortest accepted normalized number, "+34" plus at
// least eight digits.
const minPhoneLength = 11

var (
	phonePatterns = []*regexp.Regexp{
		// mobile
		regexp.MustCompile(`(?:\+34|0034)?[\s\x{00A0}]*[6789]\d{2}[\s\x{00A0}]*\d{2}[\s\x{00A0}]*\d{2}[\s\x{00A0}]*\d{2}`),
		// landline
		regexp.MustCompile(`(?:\+34|0034)?[\s\x{00A0}]*9\d{2}[\s\x{00A0}]*\d{2}[\s\x{00A0}]*\d{2}[\s\x{00A0}]*\d{2}`),
		// nine digits without separators
		regexp.MustCompile(`[6789]\d{8}`),
	}
	// \s is ASCII-only; U+00A0 comes from &nbsp; in listing markup.
	phoneSeparators = regexp.MustCompile(`[\s\x{00A0}\-.]`)

	emailPattern = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
)

// Phones returns the normalized phone numbers in text, in first-seen order
// and without duplicates. Every number carries a "+" country prefix.
func Phones(text string) []string {
	phones := []string{}
	if text == "" {
		return phones
	}

	seen := make(map[string]struct{})
	for _, re := range phonePatterns {
		for _, match := range re.FindAllString(text, -1) {
			phone, ok := NormalizePhone(match)
			if !ok {
				continue
			}
			if _, dup := seen[phone]; dup {
				continue
			}
			seen[phone] = struct{}{}
			phones = append(phones, phone)
		}
	}
	return phones
}

// NormalizePhone strips separators and forces a "+34"-style prefix.
// It reports false when the result is too short to be a real number.
func NormalizePhone(raw string) (string, bool) {
	phone := phoneSeparators.ReplaceAllString(raw, "")
	switch {
	case strings.HasPrefix(phone, "+"):
	case strings.HasPrefix(phone, "0034"):
		phone = "+34" + phone[4:]
	case strings.HasPrefix(phone, "34"):
		phone = "+" + phone
	default:
		phone = "+34" + phone
	}
	if len(phone) < minPhoneLength {
		return "", false
	}
	return phone, true
}

// Emails returns the distinct e-mail addresses in text.
// Order is first-seen but callers should not rely on it.
func Emails(text string) []string {
	emails := []string{}
	if text == "" {
		return emails
	}

	seen := make(map[string]struct{})
	for _, match := range emailPattern.FindAllString(text, -1) {
		if _, dup := seen[match]; dup {
			continue
		}
		seen[match] = struct{}{}
		emails = append(emails, match)
	}
	return emails
}

// Merge appends the values of extra that are not already in base,
// keeping first-seen order.
func Merge(base []string, extra ...[]string) []string {
	out := make([]string, 0, len(base))
	seen := make(map[string]struct{}, len(base))
	add := func(values []string) {
		for _, v := range values {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	add(base)
	for _, e := range extra {
		add(e)
	}
	return out
}
