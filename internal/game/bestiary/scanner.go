package bestiary

import "strings"

// LineKind classifies one logical line of the source document.
type LineKind string

// Line classifications.
const (
	LineHeading     LineKind = "heading"
	LineBullet      LineKind = "bullet"
	LineTableMarker LineKind = "table_marker"
	LineRule        LineKind = "rule"
	LineProse       LineKind = "prose"
)

// Line is one classified source line. For headings, Level is the heading
// depth (1..6) and Text the heading text; for bullets and table markers,
// Text is the bullet body. Prose lines (including blanks, which terminate
// sections) keep only Raw.
type Line struct {
	Raw   string
	Kind  LineKind
	Level int
	Text  string
}

// ScanLines splits the raw document into logical lines and classifies each.
// Pure function of the input; blank lines are preserved as prose.
func ScanLines(doc string) []Line {
	raw := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")
	lines := make([]Line, 0, len(raw))
	for _, r := range raw {
		lines = append(lines, classify(r))
	}
	return lines
}

func classify(raw string) Line {
	trimmed := strings.TrimSpace(raw)

	switch trimmed {
	case "---", "***", "___":
		return Line{Raw: raw, Kind: LineRule}
	}

	if level := headingLevel(trimmed); level > 0 {
		text := strings.TrimSpace(trimmed[level:])
		return Line{Raw: raw, Kind: LineHeading, Level: level, Text: text}
	}

	if strings.HasPrefix(trimmed, "- ") {
		text := strings.TrimSpace(trimmed[2:])
		if isTableMarker(text) {
			return Line{Raw: raw, Kind: LineTableMarker, Text: text}
		}
		return Line{Raw: raw, Kind: LineBullet, Text: text}
	}

	return Line{Raw: raw, Kind: LineProse, Text: trimmed}
}

// headingLevel returns the number of leading '#' characters (1..6) when the
// line is a heading, else 0. A heading requires a space or end of line after
// the hashes.
func headingLevel(s string) int {
	level := 0
	for level < len(s) && s[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0
	}
	if level < len(s) && s[level] != ' ' {
		return 0
	}
	return level
}

// isTableMarker reports whether a bullet body announces a variation table:
// the text ends in "Table" (case-insensitively).
func isTableMarker(text string) bool {
	return strings.HasSuffix(strings.ToLower(text), "table")
}
