package importer

import (
	"fmt"

	"github.com/hexmark/grimoire/internal/game/bestiary"
	"github.com/hexmark/grimoire/internal/game/loadout"
)

// Source loads raw authored content and produces parsed enemies and cards.
// Parse problems surface as warnings and sentinel entries rather than errors,
// so a partially broken document still imports.
type Source interface {
	LoadEnemies() ([]bestiary.Enemy, []bestiary.Warning)
	LoadCards() ([]loadout.LoadoutCard, []loadout.Warning)
}

// FSSource reads content from the local filesystem: one bestiary markdown
// document and any number of loadout sheet CSV exports.
type FSSource struct {
	// BestiaryFile is the path to the bestiary markdown document.
	BestiaryFile string
	// LoadoutFiles are paths to loadout sheet CSV files, merged in order.
	LoadoutFiles []string
}

// NewFSSource constructs an FSSource for the given content paths.
func NewFSSource(bestiaryFile string, loadoutFiles []string) *FSSource {
	return &FSSource{BestiaryFile: bestiaryFile, LoadoutFiles: loadoutFiles}
}

// LoadEnemies parses the bestiary document.
//
// Postcondition: returns the parsed enemies; an unreadable file yields a
// single sentinel enemy instead of an empty slice.
func (s *FSSource) LoadEnemies() ([]bestiary.Enemy, []bestiary.Warning) {
	return bestiary.LoadFile(s.BestiaryFile)
}

// LoadCards parses every configured loadout sheet and merges the results.
// Cards keep the order of first appearance across files; duplicate card IDs
// across files produce a warning and keep the first card.
//
// Postcondition: returns the merged cards and the warnings from every sheet,
// each warning message prefixed with its source file path.
func (s *FSSource) LoadCards() ([]loadout.LoadoutCard, []loadout.Warning) {
	var (
		cards    []loadout.LoadoutCard
		warnings []loadout.Warning
		seen     = map[string]string{}
	)
	for _, path := range s.LoadoutFiles {
		fileCards, fileWarnings := loadout.LoadCSVFile(path)
		for _, w := range fileWarnings {
			w.Message = fmt.Sprintf("%s: %s", path, w.Message)
			warnings = append(warnings, w)
		}
		for _, c := range fileCards {
			if prev, ok := seen[c.ID]; ok && !c.IsDiagnostic() {
				warnings = append(warnings, loadout.Warning{
					Message: fmt.Sprintf("%s: card %q already defined in %s, keeping first", path, c.ID, prev),
				})
				continue
			}
			seen[c.ID] = path
			cards = append(cards, c)
		}
	}
	return cards, warnings
}

// DiagnosticSummary counts diagnostic sentinel entries by severity prefix.
//
// Postcondition: returned keys are "error" and "warning"; absent keys mean zero.
func DiagnosticSummary(enemies []bestiary.Enemy, cards []loadout.LoadoutCard) map[string]int {
	counts := map[string]int{}
	for _, e := range enemies {
		if sev, ok := diagnosticSeverity(e.ID); ok {
			counts[sev]++
		}
	}
	for _, c := range cards {
		if sev, ok := diagnosticSeverity(c.ID); ok {
			counts[sev]++
		}
	}
	return counts
}

func diagnosticSeverity(id string) (string, bool) {
	for _, sev := range []string{"error", "warning"} {
		if len(id) > len(sev) && id[:len(sev)+1] == sev+"-" {
			return sev, true
		}
	}
	return "", false
}
