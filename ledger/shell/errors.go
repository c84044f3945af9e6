package shell

import "errors"

// ErrBusy is returned when an operation could not be serialized within the
// bounded retry budget. Callers may retry later; nothing was committed.
var ErrBusy = errors.New("busy - concurrent operations on the same item, retry later")
