package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Copier abstracts the system clipboard so the picker can be tested
// without touching the real one.
type Copier interface {
	Copy(text string) error
}

// System writes through to the OS clipboard.
type System struct{}

func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not available on this platform")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
