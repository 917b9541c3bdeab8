package layout

const ellipsis = "..."

// Truncate shortens text to maxChars runes, replacing the tail with "...".
// Text that already fits is returned unchanged. When maxChars leaves no room
// for any rune of text, the result is just the ellipsis.
func Truncate(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	keep := max(maxChars-len(ellipsis), 0)
	return string(runes[:keep]) + ellipsis
}
