package loadout

import "strings"

// HeaderMap resolves logical column names to physical column indices.
// Spreadsheet column names drift across authors and tabs, so each logical
// column carries an ordered list of acceptable spellings and the import
// tolerates renamed or reordered columns without failing.
type HeaderMap struct {
	index map[string]int
}

// NewHeaderMap builds a map from a raw header row. Each cell is trimmed and
// lowercased; when a spelling appears twice the first physical index wins.
func NewHeaderMap(header []string) HeaderMap {
	index := make(map[string]int, len(header))
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		if key == "" {
			continue
		}
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	return HeaderMap{index: index}
}

// Resolve returns the physical index of the first alias present in the
// header, or (-1, false) when no spelling matches.
func (m HeaderMap) Resolve(aliases ...string) (int, bool) {
	for _, alias := range aliases {
		if i, ok := m.index[strings.ToLower(strings.TrimSpace(alias))]; ok {
			return i, true
		}
	}
	return -1, false
}

// Cell returns the trimmed value of the column resolved by aliases in the
// given row, or "" when the column is absent or the row is too short.
func (m HeaderMap) Cell(row []string, aliases ...string) string {
	i, ok := m.Resolve(aliases...)
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
