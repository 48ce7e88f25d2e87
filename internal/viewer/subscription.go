package viewer

// Subscription is a scoped input registration. Acquire attaches at most
// once until the matching Release, so repeated transitions never stack
// duplicate listeners.
type Subscription struct {
	name   string
	active bool
	attach func()
	detach func()
}

// NewSubscription creates an inactive subscription. attach and detach may
// be nil.
func NewSubscription(name string, attach, detach func()) *Subscription {
	return &Subscription{name: name, attach: attach, detach: detach}
}

// Name returns the input kind the subscription covers
func (s *Subscription) Name() string {
	return s.name
}

// Active reports whether the subscription is attached
func (s *Subscription) Active() bool {
	return s.active
}

// Acquire attaches the subscription. It returns false when it was already
// attached.
func (s *Subscription) Acquire() bool {
	if s.active {
		return false
	}
	s.active = true
	if s.attach != nil {
		s.attach()
	}
	return true
}

// Release detaches the subscription. It returns false when nothing was
// attached.
func (s *Subscription) Release() bool {
	if !s.active {
		return false
	}
	s.active = false
	if s.detach != nil {
		s.detach()
	}
	return true
}
