package search

// MatchMonitor provides hooks to observe the matching process.
type MatchMonitor interface {
	Start(query string, tokens []string)
	Hit(title, token string)
	Truncated(dropped int)
	Finish(titles []string)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string) {}
func (n *noopMonitor) Hit(_, _ string)            {}
func (n *noopMonitor) Truncated(_ int)            {}
func (n *noopMonitor) Finish(_ []string)          {}
