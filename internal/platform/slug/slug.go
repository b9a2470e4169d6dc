package slug

import "strings"

// Make turns a human-entered quest name into its stored identifier: interior
// whitespace runs become single underscores. Uniqueness and length limits are
// the quest domain's concern.
func Make(input string) string {
	fields := strings.Fields(strings.TrimSpace(input))
	return strings.Join(fields, "_")
}
