package page

// Navigation is the state the navbar shares with the section wrappers while
// a programmatic scroll is running. During navigation every wrapper is held
// in normal flow and scroll triggers are suspended.
type Navigation struct {
	inProgress      bool
	triggersEnabled bool
	wrappers        []*SectionWrapper
	cards           []*Card
}

// NewNavigation returns idle navigation state.
func NewNavigation() *Navigation {
	return &Navigation{triggersEnabled: true}
}

// InProgress reports whether a programmatic scroll is running.
func (n *Navigation) InProgress() bool { return n.inProgress }

// TriggersEnabled reports whether scroll triggers may fire.
func (n *Navigation) TriggersEnabled() bool { return n.triggersEnabled }

func (n *Navigation) register(w *SectionWrapper) {
	n.wrappers = append(n.wrappers, w)
}

func (n *Navigation) unregister(w *SectionWrapper) {
	n.wrappers = remove(n.wrappers, w)
}

func (n *Navigation) registerCard(c *Card) {
	n.cards = append(n.cards, c)
}

func (n *Navigation) unregisterCard(c *Card) {
	n.cards = remove(n.cards, c)
}

func remove[T comparable](list []T, v T) []T {
	for i, cur := range list {
		if cur == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Begin marks navigation as running, suspends triggers and forces every
// registered section back to relative positioning.
func (n *Navigation) Begin() {
	n.inProgress = true
	n.triggersEnabled = false
	for _, w := range n.wrappers {
		w.forceRelative()
	}
}

// Resume re-enables scroll triggers.
func (n *Navigation) Resume() {
	n.triggersEnabled = true
}

// Finish clears the in-progress flag.
func (n *Navigation) Finish() {
	n.inProgress = false
}

// Refresh re-samples every registered section and card against the current
// geometry.
func (n *Navigation) Refresh() {
	for _, w := range n.wrappers {
		w.Sample()
	}
	for _, c := range n.cards {
		c.Sample()
	}
}
