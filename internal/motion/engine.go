package motion

// Engine is the animation capability injected into page components.
type Engine interface {
	// Live reports whether animations actually run. A non-live engine lets
	// callers pick a platform fallback instead.
	Live() bool
	Set(name Name, target string, props Props)
	To(name Name, target string, to Props, tw Tween) Handle
	FromTo(name Name, target string, from, to Props, tw Tween, trig *Trigger) Handle
	// ScrollTo animates the page scroll to y and calls done when it lands.
	ScrollTo(y float64, tw Tween, done func()) Handle
	// Play runs tl and calls done once its last step has finished.
	Play(tl *Timeline, done func()) Handle
	KillTweensOf(target string)
}

// Nop is the engine used when the client has no animation support. Nothing is
// animated and timelines complete immediately, leaving a static layout.
type Nop struct{}

var _ Engine = Nop{}

func (Nop) Live() bool { return false }

func (Nop) Set(Name, string, Props) {}

func (Nop) To(Name, string, Props, Tween) Handle { return nopHandle{} }

func (Nop) FromTo(Name, string, Props, Props, Tween, *Trigger) Handle { return nopHandle{} }

func (Nop) ScrollTo(_ float64, _ Tween, done func()) Handle {
	if done != nil {
		done()
	}
	return nopHandle{}
}

func (Nop) Play(_ *Timeline, done func()) Handle {
	if done != nil {
		done()
	}
	return nopHandle{}
}

func (Nop) KillTweensOf(string) {}
