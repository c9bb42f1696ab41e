package bestiary

import (
	"fmt"
	"os"
)

// LoadFile reads and parses the bestiary document at path. It never fails:
// when the document cannot be read the result is a single sentinel enemy
// whose id carries the "error-" prefix and whose name is a complete message
// naming the attempted path. Callers always receive a renderable list.
func LoadFile(path string) ([]Enemy, []Warning) {
	data, err := os.ReadFile(path)
	if err != nil {
		msg := fmt.Sprintf("The bestiary document at %q could not be read: %v.", path, err)
		return []Enemy{NewDiagnosticEnemy("error", "bestiary", msg)}, nil
	}
	return Parse(string(data))
}
