package pulse

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

type Options struct {
	// request the software fallback adapter
	ForceFallbackAdapter bool

	// log level of the wgpu library, one of OFF, ERROR, WARN, INFO, DEBUG or TRACE.
	// An empty value keeps the default.
	LogLevel string

	// allocate a Depth32Float texture next to the surface
	Depth bool
}

// OptionsFromEnv reads WGPU_FORCE_FALLBACK_ADAPTER and WGPU_LOG_LEVEL.
func OptionsFromEnv() Options {
	return Options{
		ForceFallbackAdapter: os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1",
		LogLevel:             os.Getenv("WGPU_LOG_LEVEL"),
	}
}

func applyLogLevel(level string) {
	switch strings.ToUpper(level) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// Device is the part of *wgpu.Device used to create resources.
type Device interface {
	CreateBufferInit(descriptor *wgpu.BufferInitDescriptor) (*wgpu.Buffer, error)
	CreateShaderModule(descriptor *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error)
	CreateBindGroupLayout(descriptor *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)
	CreateBindGroup(descriptor *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error)
	CreatePipelineLayout(descriptor *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error)
	CreateRenderPipeline(descriptor *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error)
	CreateTexture(descriptor *wgpu.TextureDescriptor) (*wgpu.Texture, error)
	CreateSampler(descriptor *wgpu.SamplerDescriptor) (*wgpu.Sampler, error)
}

// Queue is the part of *wgpu.Queue used to update resources.
type Queue interface {
	WriteBuffer(buffer *wgpu.Buffer, bufferOffset uint64, data []byte) error
	WriteTexture(destination *wgpu.TexelCopyTextureInfo, data []byte, dataLayout *wgpu.TexelCopyBufferLayout, writeSize *wgpu.Extent3D) error
}

// Context encapsulates the low level state of the webgpu context,
// this includes the Device, Queue, Surface and the active Adapter.
type Context struct {
	Device Device
	Queue  Queue

	adapter *wgpu.Adapter
	device  *wgpu.Device
	queue   *wgpu.Queue
	surface surface

	config     wgpu.SurfaceConfiguration
	configured bool

	useDepth bool
	depth    *Texture

	samplers *samplerCache
}

// New connects to the gpu and configures a surface of the given physical size.
// If the size is empty, the surface stays unconfigured until the first Resize
// to a non-empty size.
func New(sd *wgpu.SurfaceDescriptor, width, height uint32, opts Options) (ctx *Context, err error) {
	defer func() {
		if err != nil && ctx != nil {
			ctx.Release()
			ctx = nil
		}
	}()

	applyLogLevel(opts.LogLevel)

	// create the webgpu instance
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	ws := &wgpuSurface{surface: instance.CreateSurface(sd)}

	ctx = &Context{
		surface:  ws,
		useDepth: opts.Depth,
	}

	// create an adapter that can render to the surface
	ctx.adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
		CompatibleSurface:    ws.surface,
	})
	if err != nil {
		return ctx, fmt.Errorf("request adapter: %w", err)
	}

	// get a device with the default settings
	ctx.device, err = ctx.adapter.RequestDevice(nil)
	if err != nil {
		return ctx, fmt.Errorf("request device: %w", err)
	}

	ctx.queue = ctx.device.GetQueue()

	ctx.Device = ctx.device
	ctx.Queue = ctx.queue

	ws.adapter = ctx.adapter
	ws.device = ctx.device

	caps := ws.surface.GetCapabilities(ctx.adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	format, err := chooseFormat(caps.Formats)
	if err != nil {
		return ctx, err
	}

	ctx.config = wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		PresentMode: wgpu.PresentModeFifo,
	}

	if len(caps.AlphaModes) > 0 {
		ctx.config.AlphaMode = caps.AlphaModes[0]
	}

	ctx.samplers = newSamplerCache(ctx.Device)

	if _, err := ctx.Resize(width, height); err != nil {
		return ctx, fmt.Errorf("configure surface: %w", err)
	}

	return ctx, nil
}

// NewOffscreen creates a context on top of an existing device without a surface.
// Resources and pipelines targeting the given format can be created as usual,
// but AcquireFrame always fails.
func NewOffscreen(device Device, queue Queue, format wgpu.TextureFormat, opts Options) *Context {
	return &Context{
		Device:   device,
		Queue:    queue,
		config:   wgpu.SurfaceConfiguration{Format: format},
		useDepth: opts.Depth,
		samplers: newSamplerCache(device),
	}
}

// chooseFormat picks the first sRGB format, falling back to the first format reported.
func chooseFormat(formats []wgpu.TextureFormat) (wgpu.TextureFormat, error) {
	for _, format := range formats {
		if isSRGB(format) {
			return format, nil
		}
	}

	if len(formats) == 0 {
		return 0, ErrNoSurfaceFormat
	}

	return formats[0], nil
}

func isSRGB(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

// Resize configures the surface to the given physical size. Sizes with a zero
// dimension are ignored, and false is returned.
func (c *Context) Resize(width, height uint32) (bool, error) {
	if width == 0 || height == 0 {
		slog.Debug("Ignore resize to empty surface",
			slog.Int("width", int(width)),
			slog.Int("height", int(height)),
		)

		return false, nil
	}

	slog.Debug("Resize surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	c.config.Width = width
	c.config.Height = height

	return true, c.Reconfigure()
}

// Reconfigure configures the surface again at its last known size. It also
// recreates the depth texture, if depth is enabled.
func (c *Context) Reconfigure() error {
	if c.config.Width == 0 || c.config.Height == 0 {
		return nil
	}

	if c.surface != nil {
		c.surface.Configure(&c.config)
		c.configured = true
	}

	if !c.useDepth {
		return nil
	}

	if c.depth != nil {
		c.depth.Release()
		c.depth = nil
	}

	depth, err := newDepthTexture(c, c.config.Width, c.config.Height)
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}

	c.depth = depth

	return nil
}

// Size returns the physical size of the surface in pixels.
func (c *Context) Size() (uint32, uint32) {
	return c.config.Width, c.config.Height
}

func (c *Context) Format() wgpu.TextureFormat {
	return c.config.Format
}

// Depth reports whether the frames of this context carry a depth attachment.
func (c *Context) Depth() bool {
	return c.useDepth
}

func (c *Context) Release() {
	if c.samplers != nil {
		c.samplers.Purge()
		c.samplers = nil
	}

	if c.depth != nil {
		c.depth.Release()
		c.depth = nil
	}

	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}

	if c.device != nil {
		c.device.Release()
		c.device = nil
	}

	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}

	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}

	c.Device = nil
	c.Queue = nil
}
