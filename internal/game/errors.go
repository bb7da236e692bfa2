// path: internal/game/errors.go
package game

import "errors"

// ErrInvalidOperation reports misuse of the read-only query API, such as
// asking for the contents of an off-board coordinate. Move validation
// failures are reported as ErrorCondition values instead.
var ErrInvalidOperation = errors.New("invalid operation")
