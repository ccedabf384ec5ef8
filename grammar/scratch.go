package grammar

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"
)

// scratch collects the token ids of one side of a rule while a line is being
// tokenized. Grammars have millions of lines, every one of them producing two
// token sequences of unknown length; to avoid re-growing small slices for each of
// them we pool the buffers.
type scratch struct {
	ids   []int
	arity int
}

type scratchPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalScratchPool *scratchPool

func init() {
	globalScratchPool = &scratchPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &scratch{ids: make([]int, 0, 32)}, nil
		})
	globalScratchPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalScratchPool.opool = pool.NewObjectPool(globalScratchPool.ctx, factory, config)
}

func borrowScratch() *scratch {
	o, err := globalScratchPool.opool.BorrowObject(globalScratchPool.ctx)
	if err != nil {
		tracer().Errorf("cannot borrow token buffer: %v", err)
		return &scratch{ids: make([]int, 0, 32)}
	}
	return o.(*scratch)
}

// tokens returns a copy of the collected ids, sized to fit.
func (s *scratch) tokens() []int {
	ids := make([]int, len(s.ids))
	copy(ids, s.ids)
	return ids
}

// Clears the buffer and puts it back into the pool.
func (s *scratch) release() {
	s.ids = s.ids[:0]
	s.arity = 0
	_ = globalScratchPool.opool.ReturnObject(globalScratchPool.ctx, s)
}
