package resume

import (
	"strings"
)

// NormalizeContent converts literal \n escapes to newlines and removes emoji the PDF core
// fonts cannot encode.
func NormalizeContent(text string) (normalized string) {
	normalized = strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, `\n`, "\n")

	result := strings.Builder{}
	for _, r := range normalized {
		// Pictographs, emoticons, transport symbols
		if r >= 0x1F300 && r <= 0x1F9FF {
			continue
		}
		// Miscellaneous symbols
		if r >= 0x2600 && r <= 0x26FF {
			continue
		}
		// Dingbats
		if r >= 0x2700 && r <= 0x27BF {
			continue
		}
		// Variation selectors left behind by emoji
		if r == 0xFE0F {
			continue
		}
		result.WriteRune(r)
	}
	normalized = result.String()

	return normalized
}
