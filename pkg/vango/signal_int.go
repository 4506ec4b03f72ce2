package vango

// IntSignal is a Signal[int] used as a counter.
type IntSignal struct {
	*Signal[int]
}

// NewIntSignal creates a counter starting at n.
func NewIntSignal(n int) *IntSignal {
	return &IntSignal{Signal: NewSignal(n)}
}

// Inc adds one.
func (s *IntSignal) Inc() { s.Add(1) }

// Dec subtracts one.
func (s *IntSignal) Dec() { s.Add(-1) }

// Add adds delta.
func (s *IntSignal) Add(delta int) {
	s.Update(func(n int) int { return n + delta })
}
