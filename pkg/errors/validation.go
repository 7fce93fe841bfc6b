package errors

import "unicode"

// MaxGridLines bounds the rows and columns a scene may declare.
const MaxGridLines = 1024

// ValidateDimensions checks the row and column count of a grid.
func ValidateDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return New(ErrCodeInvalidScene, "grid needs at least one row and one column (got %dx%d)", rows, cols)
	}
	if rows > MaxGridLines || cols > MaxGridLines {
		return New(ErrCodeInvalidScene, "grid too large (max %d rows and columns)", MaxGridLines)
	}
	return nil
}

// ValidateSpan checks a row or column span. Spans of -1 extend to the grid
// edge; zero and one both mean a single line.
func ValidateSpan(span int) error {
	if span < -1 {
		return New(ErrCodeInvalidScene, "span %d is invalid (use -1 to extend to the edge)", span)
	}
	return nil
}

// ValidateID validates a widget identifier.
//
// The validation rules are intentionally conservative:
//   - No control characters
//   - No whitespace
//   - Maximum length of 128 characters
//
// An empty ID is valid; the scene loader generates one.
func ValidateID(id string) error {
	if len(id) > 128 {
		return New(ErrCodeInvalidScene, "widget id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidScene, "widget id %q contains invalid characters", id)
		}
	}
	return nil
}
