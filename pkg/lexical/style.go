package lexical

import (
	"strings"
)

// StyleMap represents parsed CSS styles
type StyleMap map[string]string

// Whitelist of inline styles preserved on export. Everything else a text
// node carries is dropped from rendered output.
var styleWhitelist = []string{"color", "background-color", "text-transform"}

// ParseStyle parses a CSS style string into a map
// Example: "color: #F97316; background-color: #BFDBFE;"
func ParseStyle(styleStr string) StyleMap {
	styles := make(StyleMap)
	if styleStr == "" {
		return styles
	}

	parts := strings.Split(styleStr, ";")
	for _, part := range parts {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) == 2 {
			k := strings.TrimSpace(kv[0])
			v := strings.TrimSpace(kv[1])
			if k != "" && v != "" {
				styles[k] = v
			}
		}
	}
	return styles
}

// Whitelisted returns the preserved declarations joined in whitelist order,
// or "" when none are present.
func (s StyleMap) Whitelisted() string {
	var relevant []string
	for _, k := range styleWhitelist {
		if v, ok := s[k]; ok {
			relevant = append(relevant, k+": "+v)
		}
	}
	return strings.Join(relevant, "; ")
}

// BuildAnnotatedOpenTag creates an HTML span opening tag carrying the
// whitelisted styles, for the markdown exporter's annotated spans.
// Returns empty string if no relevant styles found
func (s StyleMap) BuildAnnotatedOpenTag() string {
	decl := s.Whitelisted()
	if decl == "" {
		return ""
	}
	return "<span style=\"" + decl + "\">"
}
