package search

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterQuery(total uint64, hits int)
	VerbatimHit(result *Result)
	Finish(results []*Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)             {}
func (n *noopMonitor) AfterQuery(_ uint64, _ int) {}
func (n *noopMonitor) VerbatimHit(_ *Result)      {}
func (n *noopMonitor) Finish(_ []*Result)         {}
