package pulse

import (
	"fmt"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

type ResourceKind uint8

const (
	ResourceUniform ResourceKind = iota + 1
	ResourceTexture
	ResourceSampler
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceUniform:
		return "uniform"
	case ResourceTexture:
		return "texture"
	case ResourceSampler:
		return "sampler"
	default:
		return "unknown"
	}
}

// LayoutEntry declares what kind of resource is bound to a slot, and which
// shader stages can see it.
type LayoutEntry struct {
	Slot       uint32
	Visibility wgpu.ShaderStage
	Kind       ResourceKind
}

func UniformEntry(slot uint32, visibility wgpu.ShaderStage) LayoutEntry {
	return LayoutEntry{Slot: slot, Visibility: visibility, Kind: ResourceUniform}
}

// TextureEntry declares a filterable 2d float texture.
func TextureEntry(slot uint32, visibility wgpu.ShaderStage) LayoutEntry {
	return LayoutEntry{Slot: slot, Visibility: visibility, Kind: ResourceTexture}
}

// SamplerEntry declares a filtering sampler.
func SamplerEntry(slot uint32, visibility wgpu.ShaderStage) LayoutEntry {
	return LayoutEntry{Slot: slot, Visibility: visibility, Kind: ResourceSampler}
}

func (e LayoutEntry) toWGPU() wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    e.Slot,
		Visibility: e.Visibility,
	}

	switch e.Kind {
	case ResourceUniform:
		entry.Buffer = wgpu.BufferBindingLayout{
			Type: wgpu.BufferBindingTypeUniform,
		}

	case ResourceTexture:
		entry.Texture = wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeFloat,
			ViewDimension: wgpu.TextureViewDimension2D,
		}

	case ResourceSampler:
		entry.Sampler = wgpu.SamplerBindingLayout{
			Type: wgpu.SamplerBindingTypeFiltering,
		}
	}

	return entry
}

// BindGroupLayout is the declared shape of a bind group.
type BindGroupLayout struct {
	label   string
	entries []LayoutEntry
	layout  *wgpu.BindGroupLayout
}

// DeclareLayout creates a bind group layout. A layout can be used to build
// pipelines without ever being materialized.
func DeclareLayout(ctx *Context, label string, entries ...LayoutEntry) (*BindGroupLayout, error) {
	seen := map[uint32]bool{}

	var wgpuEntries []wgpu.BindGroupLayoutEntry
	for _, entry := range entries {
		if seen[entry.Slot] {
			return nil, fmt.Errorf("declare layout %q: slot %d declared twice", label, entry.Slot)
		}

		seen[entry.Slot] = true
		wgpuEntries = append(wgpuEntries, entry.toWGPU())
	}

	layout, err := ctx.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   label,
		Entries: wgpuEntries,
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group layout %q: %w", label, err)
	}

	bgl := &BindGroupLayout{
		label:   label,
		entries: slices.Clone(entries),
		layout:  layout,
	}

	return bgl, nil
}

func (l *BindGroupLayout) Label() string {
	return l.label
}

func (l *BindGroupLayout) Entries() []LayoutEntry {
	return slices.Clone(l.entries)
}

func (l *BindGroupLayout) entry(slot uint32) (LayoutEntry, bool) {
	idx := slices.IndexFunc(l.entries, func(e LayoutEntry) bool { return e.Slot == slot })
	if idx < 0 {
		return LayoutEntry{}, false
	}

	return l.entries[idx], true
}

func (l *BindGroupLayout) Release() {
	l.layout.Release()
}

// Resource is a concrete resource that is bound to a slot.
type Resource struct {
	Slot uint32
	Kind ResourceKind

	buffer  *Buffer
	texture *Texture
	sampler *wgpu.Sampler
}

func BufferResource(slot uint32, buffer *Buffer) Resource {
	return Resource{Slot: slot, Kind: ResourceUniform, buffer: buffer}
}

func TextureResource(slot uint32, texture *Texture) Resource {
	return Resource{Slot: slot, Kind: ResourceTexture, texture: texture}
}

func SamplerResource(slot uint32, sampler *wgpu.Sampler) Resource {
	return Resource{Slot: slot, Kind: ResourceSampler, sampler: sampler}
}

func (r Resource) toWGPU() wgpu.BindGroupEntry {
	entry := wgpu.BindGroupEntry{Binding: r.Slot}

	switch r.Kind {
	case ResourceUniform:
		entry.Buffer = r.buffer.buffer
		entry.Size = wgpu.WholeSize

	case ResourceTexture:
		entry.TextureView = r.texture.view
		entry.Size = wgpu.WholeSize

	case ResourceSampler:
		entry.Sampler = r.sampler
	}

	return entry
}

// BindingSet is a bind group with concrete resources for every slot of its layout.
type BindingSet struct {
	label  string
	layout *BindGroupLayout
	group  *wgpu.BindGroup
}

// Materialize binds resources to the slots of the layout. Every declared slot needs exactly
// one resource of the declared kind. A missing slot fails with ErrMissingBinding, a resource
// for an undeclared slot or of the wrong kind with ErrUnexpectedBinding.
func Materialize(ctx *Context, layout *BindGroupLayout, label string, resources ...Resource) (*BindingSet, error) {
	bound := map[uint32]bool{}

	var entries []wgpu.BindGroupEntry
	for _, resource := range resources {
		declared, ok := layout.entry(resource.Slot)
		if !ok {
			return nil, fmt.Errorf("materialize %q: slot %d is not declared: %w", label, resource.Slot, ErrUnexpectedBinding)
		}

		if declared.Kind != resource.Kind {
			return nil, fmt.Errorf("materialize %q: slot %d expects a %s, got a %s: %w",
				label, resource.Slot, declared.Kind, resource.Kind, ErrUnexpectedBinding)
		}

		if bound[resource.Slot] {
			return nil, fmt.Errorf("materialize %q: slot %d bound twice: %w", label, resource.Slot, ErrUnexpectedBinding)
		}

		bound[resource.Slot] = true
		entries = append(entries, resource.toWGPU())
	}

	for _, declared := range layout.entries {
		if !bound[declared.Slot] {
			return nil, fmt.Errorf("materialize %q: no %s for slot %d: %w", label, declared.Kind, declared.Slot, ErrMissingBinding)
		}
	}

	group, err := ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   label,
		Layout:  layout.layout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group %q: %w", label, err)
	}

	set := &BindingSet{
		label:  label,
		layout: layout,
		group:  group,
	}

	return set, nil
}

// DeclareAndMaterialize declares a layout and directly binds the given resources to it.
func DeclareAndMaterialize(ctx *Context, label string, entries []LayoutEntry, resources ...Resource) (*BindGroupLayout, *BindingSet, error) {
	layout, err := DeclareLayout(ctx, label, entries...)
	if err != nil {
		return nil, nil, err
	}

	set, err := Materialize(ctx, layout, label, resources...)
	if err != nil {
		layout.Release()
		return nil, nil, err
	}

	return layout, set, nil
}

func (s *BindingSet) Label() string {
	return s.label
}

func (s *BindingSet) Layout() *BindGroupLayout {
	return s.layout
}

func (s *BindingSet) Release() {
	s.group.Release()
}
