package assets

// Loader defines the contract for loading CSS styles and HTML shell
// templates. Implementations may load from embedded assets or from a
// directory on disk.
type Loader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}

// Default asset names used when no override is configured.
const (
	DefaultStyle    = "resume"
	DefaultTemplate = "shell"
)
