package pulse

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/golang-lru/v2"
)

const pipelineCacheSize = 256

type pipelineKey struct {
	shader     *Shader
	vertex     *VertexLayout
	bindGroups [maxBindGroups]*BindGroupLayout
	depth      bool
}

func keyOf(opts PipelineOptions) pipelineKey {
	key := pipelineKey{
		shader: opts.Shader,
		vertex: opts.Vertex,
		depth:  opts.Depth,
	}

	copy(key.bindGroups[:], opts.BindGroups)

	return key
}

// PipelineCache builds each distinct combination of shader, vertex layout,
// bind group layouts and depth only once. It owns every pipeline it hands out:
// drawables may keep using a pipeline after it was evicted, so evicted pipelines
// are only released together with the cache.
type PipelineCache struct {
	ctx   *Context
	cache *lru.Cache[pipelineKey, *Pipeline]

	// evicted pipelines that might still be in use
	retired []*Pipeline
}

func NewPipelineCache(ctx *Context) *PipelineCache {
	return newPipelineCache(ctx, pipelineCacheSize)
}

func newPipelineCache(ctx *Context, size int) *PipelineCache {
	p := &PipelineCache{ctx: ctx}

	p.cache, _ = lru.NewWithEvict[pipelineKey, *Pipeline](size, p.retire)

	return p
}

// Get returns the cached pipeline for the options, or builds a new one. The label
// of the options is only used when a new pipeline is built.
func (p *PipelineCache) Get(opts PipelineOptions) (*Pipeline, error) {
	if len(opts.BindGroups) > maxBindGroups {
		return nil, fmt.Errorf("build pipeline %q: %d bind groups exceed the limit of %d",
			opts.Label, len(opts.BindGroups), maxBindGroups)
	}

	key := keyOf(opts)

	cached, ok := p.cache.Get(key)
	if ok {
		return cached, nil
	}

	pipeline, err := NewPipeline(p.ctx, opts)
	if err != nil {
		return nil, err
	}

	p.cache.Add(key, pipeline)

	return pipeline, nil
}

func (p *PipelineCache) Len() int {
	return p.cache.Len()
}

// Release releases all pipelines built by the cache, including evicted ones.
// No drawable using one of them may be drawn afterwards.
func (p *PipelineCache) Release() {
	// purging retires all cached pipelines
	p.cache.Purge()

	for _, pipeline := range p.retired {
		pipeline.Release()
	}

	p.retired = nil
}

func (p *PipelineCache) retire(_ pipelineKey, pipeline *Pipeline) {
	slog.Debug("Retire evicted pipeline", slog.String("label", pipeline.Label()))
	p.retired = append(p.retired, pipeline)
}
