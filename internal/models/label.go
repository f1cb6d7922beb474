package models

// labelRunes caps admin/log labels to keep them scannable.
const labelRunes = 30

// Label returns a short human-readable label for an entity, truncated to
// a fixed rune count.
func Label(name string) string {
	runes := []rune(name)
	if len(runes) <= labelRunes {
		return name
	}
	return string(runes[:labelRunes])
}
