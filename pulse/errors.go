package pulse

import "errors"

var (
	ErrNoSurfaceFormat   = errors.New("surface reports no usable format")
	ErrSurfaceLost       = errors.New("surface lost")
	ErrSurfaceOutdated   = errors.New("surface outdated")
	ErrSurfaceTimeout    = errors.New("surface timed out")

	// ErrSurfaceUnconfigured is returned by AcquireFrame until the surface got a
	// non-empty size.
	ErrSurfaceUnconfigured = errors.New("surface is not configured")

	ErrOutOfMemory       = errors.New("out of memory")
	ErrMissingBinding    = errors.New("missing binding")
	ErrUnexpectedBinding = errors.New("unexpected binding")
	ErrNotWritable       = errors.New("buffer is not writable")
	ErrNoDepthBuffer     = errors.New("context has no depth buffer")
	ErrEmptyTexture      = errors.New("texture has no pixels")
)
