package plan

const truncationMarker = "\n... [truncated] ...\n"

// Truncate cuts text to maxBytes, keeping 70% of the budget from the head
// and the remainder from the tail so both the change summary at the top and
// the plan totals at the bottom survive. maxBytes <= 0 disables the ceiling.
func Truncate(text string, maxBytes int) (string, bool) {
	if maxBytes <= 0 || len(text) <= maxBytes {
		return text, false
	}

	head := maxBytes * 7 / 10
	tail := maxBytes - head - len(truncationMarker)
	if tail <= 0 {
		return text[:maxBytes], true
	}
	return text[:head] + truncationMarker + text[len(text)-tail:], true
}
