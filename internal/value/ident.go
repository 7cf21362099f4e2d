package value

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CheckIdentifier validates a table or column name.
//
// Identifiers are emitted verbatim (this layer never quotes them), so the
// only requirements are that the name is not blank and is already in
// Unicode NFC form. Two names that render identically must compile
// identically.
func CheckIdentifier(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("identifier is empty")
	}
	if !norm.NFC.IsNormalString(name) {
		return fmt.Errorf("identifier %q is not NFC normalized", name)
	}
	return nil
}
