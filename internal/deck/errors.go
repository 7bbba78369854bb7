package deck

import "fmt"

// MissingSlideError is returned when an order entry has no slides block.
type MissingSlideError struct {
	Group string
	Slide string
}

func (e *MissingSlideError) Error() string {
	return fmt.Sprintf("slide group %q: slide %q is listed in order but has no entry in slides", e.Group, e.Slide)
}

// MissingAssetError is returned when a slide's background is not in the image pool.
type MissingAssetError struct {
	Group    string
	Slide    string
	Filename string
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("slide group %q: slide %q references missing background image %q", e.Group, e.Slide, e.Filename)
}

// ReservedFieldError is returned when a slide declares a field that the
// generator sets itself.
type ReservedFieldError struct {
	Group string
	Slide string
	Field string
}

func (e *ReservedFieldError) Error() string {
	return fmt.Sprintf("slide group %q: slide %q must not declare reserved field %q", e.Group, e.Slide, e.Field)
}

// InvalidFieldError is returned when a slide field name cannot be used as a
// template variable.
type InvalidFieldError struct {
	Group string
	Slide string
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("slide group %q: slide %q: field %q is not a valid template variable name (use letters, digits and underscores)", e.Group, e.Slide, e.Field)
}
