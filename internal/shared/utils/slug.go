package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatHyphens = regexp.MustCompile(`-+`)
)

// GenerateSlug: "Trợ lý AI & Chatbot" -> "tro-ly-ai-chatbot"
func GenerateSlug(input string) string {
	ascii := RemoveDiacritics(input)
	lower := strings.ToLower(ascii)
	hyphenated := strings.Join(strings.Fields(lower), "-")
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "-")
	normalized := repeatHyphens.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

// RemoveDiacritics bỏ dấu bằng NFD + xóa combining marks.
// "đ"/"Đ" không tách được qua NFD nên map tay.
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		out = input
	}
	return strings.NewReplacer("đ", "d", "Đ", "D", "ø", "o", "Ø", "O", "ß", "ss").Replace(out)
}
