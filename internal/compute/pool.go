package compute

import (
	"runtime"
	"sync"
)

// Pool distributes groups across a fixed set of workers. Each group is
// processed by exactly one worker, which runs the phases in order with
// all lanes of the group between them, so the per-group phase barrier
// holds trivially while distinct groups proceed concurrently.
type Pool struct {
	workers int
}

// NewPool returns a pool backend with the given worker count, or one
// worker per CPU when workers <= 0.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{workers: workers}
}

func (p *Pool) Name() string    { return "pool" }
func (p *Pool) Available() bool { return p.workers > 1 }
func (p *Pool) Cleanup()        {}

func (p *Pool) Run(groups, width int, phases []Phase) {
	if groups < p.workers*2 {
		// Not enough groups to amortize goroutine startup.
		runRange(0, groups, width, phases)
		return
	}

	var wg sync.WaitGroup
	chunk := (groups + p.workers - 1) / p.workers

	for w := 0; w < p.workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > groups {
			end = groups
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			runRange(start, end, width, phases)
		}(start, end)
	}

	wg.Wait()
}

func runRange(start, end, width int, phases []Phase) {
	for g := start; g < end; g++ {
		for _, phase := range phases {
			for lane := 0; lane < width; lane++ {
				phase(g, lane)
			}
		}
	}
}
