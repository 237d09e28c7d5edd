package geom

import assert "github.com/arl/assertgo"

// assertTrue panics (when built with the debug build tag) if cond is false.
// Used for the kernel's "should never happen" preconditions: parallel lines
// handed to LineIntersection, a half-line that doesn't exit its rect, an
// undirected CheckHalflineSide query.
func assertTrue(cond bool, format string, args ...interface{}) {
	assert.Truef(cond, format, args...)
}
