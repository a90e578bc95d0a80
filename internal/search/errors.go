// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

// ValidationError reports bad search options. It is always returned before
// any network activity.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "invalid search options: " + e.Msg
}
