package eprime

// MissingColumnError reports a reference to a column the frame does not
// have. Selection and merge treat this as fatal rather than silently
// dropping the column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return "missing column: " + e.Column
}
