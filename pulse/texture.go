package pulse

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/image/draw"

	_ "image/jpeg"
	_ "image/png"
)

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
type Texture struct {
	label   string
	texture *wgpu.Texture
	view    *wgpu.TextureView

	format        wgpu.TextureFormat
	width, height uint32
}

type TextureOptions struct {
	Label  string
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32

	// defaults to TextureBinding | CopyDst
	Usage wgpu.TextureUsage
}

func NewTexture(ctx *Context, opts TextureOptions) (*Texture, error) {
	if opts.Width == 0 || opts.Height == 0 {
		return nil, fmt.Errorf("create texture %q of size %dx%d: %w",
			opts.Label, opts.Width, opts.Height, ErrEmptyTexture)
	}

	if opts.Usage == 0 {
		opts.Usage = wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst
	}

	texture, err := ctx.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         opts.Label,
		Format:        opts.Format,
		Usage:         opts.Usage,
		SampleCount:   1,
		MipLevelCount: 1,
		Dimension:     wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              opts.Width,
			Height:             opts.Height,
			DepthOrArrayLayers: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", opts.Label, err)
	}

	// now create a default texture view
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create view of texture %q: %w", opts.Label, err)
	}

	t := &Texture{
		label:   opts.Label,
		texture: texture,
		view:    view,
		format:  opts.Format,
		width:   opts.Width,
		height:  opts.Height,
	}

	return t, nil
}

func newDepthTexture(ctx *Context, width, height uint32) (*Texture, error) {
	return NewTexture(ctx, TextureOptions{
		Label:  "DepthTexture",
		Format: wgpu.TextureFormatDepth32Float,
		Width:  width,
		Height: height,
		Usage:  wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
}

func (t *Texture) Width() uint32 {
	return t.width
}

func (t *Texture) Height() uint32 {
	return t.height
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

func (t *Texture) Release() {
	t.view.Release()
	t.texture.Release()
}

// WritePixels replaces the full content of the texture with tightly packed rgba pixels.
func (t *Texture) WritePixels(ctx *Context, pixels []byte) error {
	if len(pixels) != int(t.width*t.height*4) {
		return fmt.Errorf("expected %d bytes of pixel data, got %d", t.width*t.height*4, len(pixels))
	}

	layout := &wgpu.TexelCopyBufferLayout{
		Offset:       0,
		BytesPerRow:  t.width * 4,
		RowsPerImage: t.height,
	}

	size := &wgpu.Extent3D{
		Width:              t.width,
		Height:             t.height,
		DepthOrArrayLayers: 1,
	}

	dest := &wgpu.TexelCopyTextureInfo{
		Texture:  t.texture,
		MipLevel: 0,
		Origin:   wgpu.Origin3D{},
		Aspect:   wgpu.TextureAspectAll,
	}

	// send data to the gpu
	err := ctx.Queue.WriteTexture(dest, pixels, layout, size)
	if err != nil {
		return fmt.Errorf("copy image data to texture %q: %w", t.label, err)
	}

	return nil
}

// LoadTexture decodes a png or jpeg image from a file relative to the working directory.
func LoadTexture(ctx *Context, path string, maxSize int) (*Texture, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}

	defer fp.Close()

	return DecodeTexture(ctx, path, fp, maxSize)
}

func DecodeTexture(ctx *Context, label string, r io.Reader, maxSize int) (*Texture, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", label, err)
	}

	return NewTextureFromImage(ctx, label, src, maxSize)
}

// NewTextureFromImage uploads an image into a new sRGB texture. Images larger than
// maxSize in either dimension are scaled down first. A maxSize of zero disables scaling.
func NewTextureFromImage(ctx *Context, label string, src image.Image, maxSize int) (*Texture, error) {
	rgba := toRGBA(src, maxSize)
	if rgba.Bounds().Size() != src.Bounds().Size() {
		slog.Info("Scaled texture down",
			slog.String("label", label),
			slog.Int("width", rgba.Bounds().Dx()),
			slog.Int("height", rgba.Bounds().Dy()),
		)
	}

	t, err := NewTexture(ctx, TextureOptions{
		Label:  label,
		Format: wgpu.TextureFormatRGBA8UnormSrgb,
		Width:  uint32(rgba.Bounds().Dx()),
		Height: uint32(rgba.Bounds().Dy()),
	})
	if err != nil {
		return nil, err
	}

	if err := t.WritePixels(ctx, rgba.Pix); err != nil {
		t.Release()
		return nil, fmt.Errorf("upload texture: %w", err)
	}

	return t, nil
}

// toRGBA converts the image into a tightly packed rgba image at the origin,
// keeping the aspect ratio when scaling down to fit maxSize.
func toRGBA(src image.Image, maxSize int) *image.RGBA {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()

	if maxSize > 0 && (width > maxSize || height > maxSize) {
		if width >= height {
			height = max(1, height*maxSize/width)
			width = maxSize
		} else {
			width = max(1, width*maxSize/height)
			height = maxSize
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		return dst
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}
