package interceptors

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/profiles/metaes/internal/ast"
	"github.com/profiles/metaes/internal/interp"
)

// visitKey identifies one node visit without touching Evaluation.Value,
// which may wrap a host object that isn't comparable.
type visitKey struct {
	scriptID string
	node     ast.Node
}

// Profiler accumulates wall-time spent per node kind across a run. It
// is safe to share across concurrently scheduled top-level evaluate()
// calls bound to the same interceptor.
type Profiler struct {
	mu      sync.Mutex
	started map[visitKey]time.Time
	total   map[string]time.Duration
	visits  map[string]uint64
}

// NewProfiler constructs an empty Profiler and its interceptor.
func NewProfiler() (*Profiler, interp.Interceptor) {
	p := &Profiler{
		started: map[visitKey]time.Time{},
		total:   map[string]time.Duration{},
		visits:  map[string]uint64{},
	}
	return p, p.intercept
}

func (p *Profiler) intercept(ev interp.Evaluation) error {
	key := visitKey{scriptID: ev.ScriptID, node: ev.Node}
	p.mu.Lock()
	defer p.mu.Unlock()
	switch ev.Phase {
	case interp.PhaseEnter:
		p.started[key] = time.Now()
	case interp.PhaseExit:
		start, ok := p.started[key]
		if !ok {
			return nil
		}
		delete(p.started, key)
		kind := ev.Node.Kind()
		p.total[kind] += time.Since(start)
		p.visits[kind]++
	}
	return nil
}

// Report writes a humanized per-node-kind summary to w, busiest kind
// first.
func (p *Profiler) Report(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	kinds := make([]string, 0, len(p.total))
	for k := range p.total {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return p.total[kinds[i]] > p.total[kinds[j]] })

	for _, kind := range kinds {
		fmt.Fprintf(w, "%-24s %10s  visits=%s\n",
			kind, p.total[kind], humanize.Comma(int64(p.visits[kind])))
	}
}
