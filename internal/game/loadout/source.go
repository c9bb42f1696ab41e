package loadout

import (
	"encoding/csv"
	"fmt"
	"os"
)

// LoadCSVFile reads and parses a loadout sheet exported as CSV. It never
// fails: when the file cannot be read or is not valid CSV the result is a
// single sentinel card naming the attempted path.
func LoadCSVFile(path string) ([]LoadoutCard, []Warning) {
	f, err := os.Open(path)
	if err != nil {
		msg := fmt.Sprintf("The loadout sheet at %q could not be read: %v.", path, err)
		return []LoadoutCard{NewDiagnosticCard("error", "loadout", msg)}, nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Hand-exported sheets often have ragged trailing rows.
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		msg := fmt.Sprintf("The loadout sheet at %q is not valid CSV: %v.", path, err)
		return []LoadoutCard{NewDiagnosticCard("error", "loadout", msg)}, nil
	}
	return ParseRows(rows)
}
