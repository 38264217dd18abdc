package i18n

import (
	"fmt"
	"strings"
)

// ReplacePlaceholders replaces {{name}} placeholders in msg with values from
// placeholders. Unknown placeholders are left unchanged.
//
//	ReplacePlaceholders("Hello, {{name}}!", M{"name": "John"}) // "Hello, John!"
func ReplacePlaceholders(msg string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}

	pairs := make([]string, 0, len(placeholders)*2)
	for key, value := range placeholders {
		pairs = append(pairs, "{{"+key+"}}", fmt.Sprintf("%v", value))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
