package pathfinder

type entry struct {
	node string
	dist float64
	seq  int
}

// frontier is a binary min-heap ordered by tentative distance, then by
// insertion sequence.
type frontier []entry

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(entry)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	*f = old[:n-1]
	return e
}
