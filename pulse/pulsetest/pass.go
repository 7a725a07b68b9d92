package pulsetest

import (
	"github.com/oliverbestmann/hermit/pulse"
)

type Op string

const (
	OpSetPipeline     Op = "SetPipeline"
	OpSetBindGroup    Op = "SetBindGroup"
	OpSetVertexBuffer Op = "SetVertexBuffer"
	OpSetIndexBuffer  Op = "SetIndexBuffer"
	OpDrawIndexed     Op = "DrawIndexed"
)

// Call is one command recorded into a RenderPass.
type Call struct {
	Op Op

	Slot       uint32
	Pipeline   *pulse.Pipeline
	BindingSet *pulse.BindingSet
	Buffer     *pulse.Buffer

	IndexCount    uint32
	InstanceCount uint32
}

// RenderPass records the commands drawables issue.
type RenderPass struct {
	Calls []Call
}

var _ pulse.RenderPass = (*RenderPass)(nil)

func (r *RenderPass) SetPipeline(pipeline *pulse.Pipeline) {
	r.Calls = append(r.Calls, Call{Op: OpSetPipeline, Pipeline: pipeline})
}

func (r *RenderPass) SetBindGroup(slot uint32, set *pulse.BindingSet) {
	r.Calls = append(r.Calls, Call{Op: OpSetBindGroup, Slot: slot, BindingSet: set})
}

func (r *RenderPass) SetVertexBuffer(slot uint32, buffer *pulse.Buffer) {
	r.Calls = append(r.Calls, Call{Op: OpSetVertexBuffer, Slot: slot, Buffer: buffer})
}

func (r *RenderPass) SetIndexBuffer(buffer *pulse.Buffer) {
	r.Calls = append(r.Calls, Call{Op: OpSetIndexBuffer, Buffer: buffer})
}

func (r *RenderPass) DrawIndexed(indexCount, instanceCount uint32) {
	r.Calls = append(r.Calls, Call{Op: OpDrawIndexed, IndexCount: indexCount, InstanceCount: instanceCount})
}

// Ops returns the operations in the order they were recorded.
func (r *RenderPass) Ops() []Op {
	var ops []Op
	for _, call := range r.Calls {
		ops = append(ops, call.Op)
	}

	return ops
}

// Filter returns the recorded calls of the given operation.
func (r *RenderPass) Filter(op Op) []Call {
	var calls []Call
	for _, call := range r.Calls {
		if call.Op == op {
			calls = append(calls, call)
		}
	}

	return calls
}

// BindGroupsAt counts the bind groups set at the given slot.
func (r *RenderPass) BindGroupsAt(slot uint32) int {
	var count int
	for _, call := range r.Filter(OpSetBindGroup) {
		if call.Slot == slot {
			count++
		}
	}

	return count
}
