package directions

import "fmt"

// UpstreamError is returned when the directions service answers with a
// non-success status or an unusable body.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("failed api request: %d, %s", e.StatusCode, e.Body)
}
