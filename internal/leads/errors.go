package leads

import "errors"

// ErrLeadNotFound is returned when a lead is not in the repository.
var ErrLeadNotFound = errors.New("lead not found")
