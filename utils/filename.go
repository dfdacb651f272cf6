package utils

import (
	"strings"
	"unicode"
)

// DocumentFilename builds the export filename: the capitalized document
// kind followed by the recipient name with whitespace collapsed to
// underscores, e.g. "Quotation_Asha_Rao.pdf".
func DocumentFilename(kind, recipientName string) string {
	name := strings.TrimSpace(recipientName)
	if name == "" {
		name = "Guest"
	}
	name = strings.Join(strings.Fields(name), "_")
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}
	return kind + "_" + name + ".pdf"
}

// DigitsOnly strips every non-digit rune from a phone number, the form
// the messaging deep link requires.
func DigitsOnly(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
