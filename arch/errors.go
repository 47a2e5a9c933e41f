package arch

import "errors"

// ErrBadPaths is a fatal structural-precondition failure: the
// file-symbol handed to Load held zero or multiple paths. This indicates
// a scheduler bug upstream, not a recoverable condition, so the pass
// aborts rather than guessing which path to use.
var ErrBadPaths = errors.New("arch: file-symbol must hold exactly one path")

// ErrNotAFileSymbol is returned when the Ref handed to Load no longer
// resolves to a live symbol in the arena, kept distinct from ErrBadPaths
// so callers can tell the two fatal shapes apart.
var ErrNotAFileSymbol = errors.New("arch: symbol has no resolvable file path")
