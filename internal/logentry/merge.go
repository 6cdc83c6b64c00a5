package logentry

import (
	"container/heap"
	"context"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

const defaultParallelism = 4

// Merger reads many sources and merges them into one time-ordered result.
type Merger struct {
	Logger      hclog.Logger
	Parallelism int
}

// ReadAll reads each path with f and merges the results. Unreadable files
// are logged and skipped. f.Max is applied per file before the merge and
// again to the merged tail, so the result approximates but does not
// guarantee the global newest f.Max entries.
func (m Merger) ReadAll(ctx context.Context, paths []string, f Filter) ([]Entry, error) {
	logger := m.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	limit := m.Parallelism
	if limit <= 0 {
		limit = defaultParallelism
	}

	lists := make([][]Entry, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			entries, err := Read(gctx, path, f)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("skipping log file", "path", path, "error", err)
				return nil
			}
			lists[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := Merge(lists...)
	if f.Unbounded() {
		return merged, nil
	}
	return Tail(merged, f.Max), nil
}

// Merge interleaves lists that are each sorted oldest-first. Ties go to
// the earlier list, and order within a list is preserved.
func Merge(lists ...[]Entry) []Entry {
	total := 0
	h := make(cursorHeap, 0, len(lists))
	for i, list := range lists {
		total += len(list)
		if len(list) > 0 {
			h = append(h, cursor{list: list, source: i})
		}
	}
	heap.Init(&h)

	out := make([]Entry, 0, total)
	for h.Len() > 0 {
		head := &h[0]
		out = append(out, head.list[head.pos])
		head.pos++
		if head.pos == len(head.list) {
			heap.Pop(&h)
			continue
		}
		heap.Fix(&h, 0)
	}
	return out
}

// Tail keeps the last n entries. n <= 0 keeps everything.
func Tail(entries []Entry, n int) []Entry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

type cursor struct {
	list   []Entry
	pos    int
	source int
}

type cursorHeap []cursor

func (h cursorHeap) Len() int { return len(h) }

func (h cursorHeap) Less(i, j int) bool {
	if c := Compare(h[i].list[h[i].pos], h[j].list[h[j].pos]); c != 0 {
		return c < 0
	}
	return h[i].source < h[j].source
}

func (h cursorHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cursorHeap) Push(x any) { *h = append(*h, x.(cursor)) }

func (h *cursorHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
