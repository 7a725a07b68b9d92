package pulse

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cogentcore/webgpu/wgpu"
)

const (
	DefaultVertexEntry   = "vs_main"
	DefaultFragmentEntry = "fs_main"
)

// Shader is a compiled WGSL module together with the names of its
// vertex and fragment entry points.
type Shader struct {
	label  string
	module *wgpu.ShaderModule

	vertexEntry   string
	fragmentEntry string
}

func NewShader(ctx *Context, label string, source string) (*Shader, error) {
	module, err := ctx.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      label,
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: source},
	})
	if err != nil {
		return nil, fmt.Errorf("compile shader %q: %w", label, err)
	}

	shader := &Shader{
		label:         label,
		module:        module,
		vertexEntry:   DefaultVertexEntry,
		fragmentEntry: DefaultFragmentEntry,
	}

	return shader, nil
}

// LoadShader compiles the shader source found at path, relative to the working directory.
// A missing file results in an error wrapping fs.ErrNotExist.
func LoadShader(ctx *Context, path string) (*Shader, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load shader: %w", err)
	}

	return NewShader(ctx, filepath.Base(path), string(source))
}

// WithEntries returns a view of the same shader module using different entry points.
func (s *Shader) WithEntries(vertex, fragment string) *Shader {
	shader := *s
	shader.vertexEntry = vertex
	shader.fragmentEntry = fragment
	return &shader
}

func (s *Shader) Label() string {
	return s.label
}

func (s *Shader) VertexEntry() string {
	return s.vertexEntry
}

func (s *Shader) FragmentEntry() string {
	return s.fragmentEntry
}

func (s *Shader) Release() {
	s.module.Release()
}
