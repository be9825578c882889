package core

import "strings"

// ParseOutline splits a generated outline into its items.
//
// Each line is trimmed and blank lines are dropped. Nothing else is
// normalized: list markers such as "1." stay part of the item, and a response
// that is not a list at all is accepted line by line.
func ParseOutline(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	items := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if item := strings.TrimSpace(line); item != "" {
			items = append(items, item)
		}
	}
	return items
}
