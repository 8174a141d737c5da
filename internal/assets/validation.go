package assets

import (
	"fmt"
	"strings"
)

// MaxAssetNameLength bounds stylesheet and template names; they come from
// config and flags, never from document content.
const MaxAssetNameLength = 100

// ValidateAssetName checks a stylesheet or template name before it is
// joined into an asset path. Names are bare: no extension, no separators,
// no dots, so a configured name can never reach outside the asset dirs.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
