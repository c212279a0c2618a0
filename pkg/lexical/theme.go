package lexical

// Theme maps style slots to CSS class names, e.g. "paragraph" -> "de-paragraph"
// or "text.bold" -> "de-text-bold". It is supplied at editor construction and
// consulted by Render behaviors; unknown slots resolve to "".
type Theme map[string]string

// Class returns the class configured for slot, or "".
func (t Theme) Class(slot string) string {
	return t[slot]
}
