package pulse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var errNoSurface = errors.New("context has no surface")

type surface interface {
	Configure(config *wgpu.SurfaceConfiguration)
	GetCurrentTexture() (*wgpu.Texture, error)
	Present()
	Release()
}

type wgpuSurface struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
}

func (s *wgpuSurface) Configure(config *wgpu.SurfaceConfiguration) {
	s.surface.Configure(s.adapter, s.device, config)
}

func (s *wgpuSurface) GetCurrentTexture() (*wgpu.Texture, error) {
	return s.surface.GetCurrentTexture()
}

func (s *wgpuSurface) Present() {
	s.surface.Present()
}

func (s *wgpuSurface) Release() {
	s.surface.Release()
}

// AcquireFrame acquires the next presentable image of the surface. A failure is
// reported as one of ErrSurfaceLost, ErrSurfaceOutdated, ErrSurfaceTimeout
// or ErrOutOfMemory, if the driver gives a reason. As long as the surface never
// had a non-empty size, ErrSurfaceUnconfigured is returned.
func (c *Context) AcquireFrame() (Frame, error) {
	if c.surface == nil {
		return nil, errNoSurface
	}

	if !c.configured {
		return nil, ErrSurfaceUnconfigured
	}

	texture, err := c.surface.GetCurrentTexture()
	if err != nil {
		return nil, classifySurfaceError(err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create surface view: %w", err)
	}

	frame := &surfaceFrame{
		ctx:     c,
		texture: texture,
		view:    view,
	}

	return frame, nil
}

func classifySurfaceError(err error) error {
	message := strings.ToLower(err.Error())

	var reason error
	switch {
	case strings.Contains(message, "timed out"), strings.Contains(message, "timeout"):
		reason = ErrSurfaceTimeout
	case strings.Contains(message, "outdated"):
		reason = ErrSurfaceOutdated
	case strings.Contains(message, "lost"):
		reason = ErrSurfaceLost
	case strings.Contains(message, "out of memory"), strings.Contains(message, "outofmemory"):
		reason = ErrOutOfMemory
	default:
		return fmt.Errorf("get current texture: %w", err)
	}

	return fmt.Errorf("get current texture: %w", errors.Join(reason, err))
}
