package engine

// Stage is the pull interface every element of the pipeline exposes: a
// single-instance pull and a batch pull that returns the next non-empty
// ordered set of candidates (§2, §4.4). Source, ByMonthStage (BYMONTH in
// EXPAND mode) and BySetPos implement Stage directly; every other BYxxx
// part is a ByStage wrapping a FilterExpander.
type Stage interface {
	// Next returns the next candidate instance. ok is false only when the
	// stage is asked to produce past what a bounded caller needs — the
	// core itself is unbounded (§4.12), so in practice Next always
	// succeeds or returns an error.
	Next() (inst Instance, ok bool, err error)
	// NextSet returns the next non-empty batch of candidates, already
	// sorted ascending (§4.2's "mandated ordering contract").
	NextSet() (*OrderedInstanceSet, error)
}

// FilterExpander is the pair of hooks spec.md §4.4 calls "abstract hooks":
// a concrete BYxxx stage implements one or both depending on its mode.
type FilterExpander interface {
	// Filter reports whether to drop instance (true = drop). Used in
	// LIMIT mode.
	Filter(inst Instance) bool
	// Expand appends zero or more instances derived from inst into out.
	// start is the rule's DTSTART; no stage in this package reads it.
	// Used in EXPAND mode.
	Expand(out *OrderedInstanceSet, inst Instance, start Instance)
}

// ByStage adapts a FilterExpander to the Stage pull contract, in either
// EXPAND or LIMIT mode, with the MAX_EMPTY safety bounds of §4.4.
type ByStage struct {
	name     string
	upstream Stage
	expand   bool
	impl     FilterExpander
	start    Instance

	out       *OrderedInstanceSet
	cursor    int
	haveBatch bool
}

// NewByStage constructs a stage. name identifies it for
// OverConstrainedError messages (e.g. "BYMONTH").
func NewByStage(name string, upstream Stage, expand bool, impl FilterExpander, start Instance) *ByStage {
	return &ByStage{
		name:     name,
		upstream: upstream,
		expand:   expand,
		impl:     impl,
		start:    start,
		out:      NewOrderedInstanceSet(64),
	}
}

// NextSet implements Stage.
func (s *ByStage) NextSet() (*OrderedInstanceSet, error) {
	if s.expand {
		return s.nextSetExpand()
	}
	return s.nextSetLimit()
}

func (s *ByStage) nextSetExpand() (*OrderedInstanceSet, error) {
	s.out.Clear()
	for empty := 0; s.out.Len() == 0; empty++ {
		if empty >= MaxEmptySets {
			return nil, &OverConstrainedError{Stage: s.name}
		}
		batch, err := s.upstream.NextSet()
		if err != nil {
			return nil, err
		}
		for _, cand := range batch.All() {
			s.impl.Expand(s.out, cand, s.start)
		}
	}
	s.out.Sort()
	return s.out, nil
}

func (s *ByStage) nextSetLimit() (*OrderedInstanceSet, error) {
	s.out.Clear()
	for empty := 0; s.out.Len() == 0; empty++ {
		if empty >= MaxEmptySets {
			return nil, &OverConstrainedError{Stage: s.name}
		}
		batch, err := s.upstream.NextSet()
		if err != nil {
			return nil, err
		}
		for _, cand := range batch.All() {
			if !s.impl.Filter(cand) {
				s.out.Append(cand)
			}
		}
	}
	s.out.Sort()
	return s.out, nil
}

// Next implements Stage by draining the current batch, refilling via
// NextSet when exhausted.
func (s *ByStage) Next() (Instance, bool, error) {
	if !s.haveBatch || s.cursor >= s.out.Len() {
		batch, err := s.NextSet()
		if err != nil {
			return 0, false, err
		}
		s.out = batch
		s.cursor = 0
		s.haveBatch = true
	}
	v := s.out.At(s.cursor)
	s.cursor++
	return v, true, nil
}
