package pulse

func NewPipelineCacheWithSize(ctx *Context, size int) *PipelineCache {
	return newPipelineCache(ctx, size)
}

func (p *PipelineCache) Retired() []*Pipeline {
	return p.retired
}
