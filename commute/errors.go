package commute

import "fmt"

// DataIntegrityError reports a record that breaks an invariant of the log or
// of the directions data. Line is set when the record came from the log.
type DataIntegrityError struct {
	Line     int
	Location string
	Reason   string
}

func (e *DataIntegrityError) Error() string {
	message := "data integrity error"
	if e.Line > 0 {
		message += fmt.Sprintf(" on line %d", e.Line)
	}
	if e.Location != "" {
		message += fmt.Sprintf(" for %s", e.Location)
	}
	return message + ": " + e.Reason
}
