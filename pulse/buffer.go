package pulse

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// Buffer is a gpu resident byte array.
type Buffer struct {
	label  string
	usage  wgpu.BufferUsage
	size   uint64
	buffer *wgpu.Buffer
}

// NewBuffer uploads a slice of plain old data values into a new buffer. The caller
// must make sure the usage matches the way the buffer is bound later.
func NewBuffer[T any](ctx *Context, label string, data []T, usage wgpu.BufferUsage) (*Buffer, error) {
	contents := AsBytes(data)

	buffer, err := ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: contents,
		Usage:    usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create buffer %q: %w", label, err)
	}

	b := &Buffer{
		label:  label,
		usage:  usage,
		size:   uint64(len(contents)),
		buffer: buffer,
	}

	return b, nil
}

// NewUniformBuffer creates a uniform buffer holding a single value. The buffer
// can be updated with WriteValue.
func NewUniformBuffer[T any](ctx *Context, label string, value *T) (*Buffer, error) {
	return NewBuffer(ctx, label, unsafe.Slice(value, 1), wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
}

// Write overwrites the beginning of the buffer with the given bytes.
func (b *Buffer) Write(ctx *Context, data []byte) error {
	if b.usage&wgpu.BufferUsageCopyDst == 0 {
		return fmt.Errorf("write buffer %q: %w", b.label, ErrNotWritable)
	}

	if uint64(len(data)) > b.size {
		return fmt.Errorf("write %d bytes into buffer %q of size %d", len(data), b.label, b.size)
	}

	if err := ctx.Queue.WriteBuffer(b.buffer, 0, data); err != nil {
		return fmt.Errorf("write buffer %q: %w", b.label, err)
	}

	return nil
}

// WriteValue overwrites the buffer with a single value.
func WriteValue[T any](ctx *Context, buffer *Buffer, value *T) error {
	return buffer.Write(ctx, AsByteSlice(value))
}

func (b *Buffer) Label() string {
	return b.label
}

func (b *Buffer) Usage() wgpu.BufferUsage {
	return b.usage
}

// Size returns the size of the buffer in bytes.
func (b *Buffer) Size() uint64 {
	return b.size
}

func (b *Buffer) Release() {
	b.buffer.Release()
}

// AsByteSlice returns the memory of the value as a byte slice.
func AsByteSlice[T any](value *T) []byte {
	var zeroT T

	n := unsafe.Sizeof(zeroT)
	ptr := (*byte)(unsafe.Pointer(value))

	return unsafe.Slice(ptr, n)
}

// AsBytes returns the memory backing the slice as a byte slice.
func AsBytes[T any](values []T) []byte {
	if len(values) == 0 {
		return nil
	}

	var zeroT T

	n := unsafe.Sizeof(zeroT) * uintptr(len(values))
	ptr := (*byte)(unsafe.Pointer(unsafe.SliceData(values)))

	return unsafe.Slice(ptr, n)
}
