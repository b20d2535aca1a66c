package application

import "errors"

// ErrStorage wraps failures of the playlist repository. The in-memory
// session is never modified when it is returned.
var ErrStorage = errors.New("playlist storage unavailable")
