package vanilla

// ChromeClass is a typed identifier for the CSS classes the renderer adds
// around the compiled form.
type ChromeClass string

const (
	ClassWrapper     ChromeClass = "fg-form"
	ClassFormErrors  ChromeClass = "fg-errors"
	ClassFieldErrors ChromeClass = "fg-field-errors"
	ClassActions     ChromeClass = "fg-actions"
	ClassInvalid     ChromeClass = "fg-invalid"
)
