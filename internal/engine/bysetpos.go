package engine

// BySetPos implements §4.11. Unlike every other BYxxx stage it operates
// on an entire expanded-and-sorted batch rather than per instance: for
// each configured position p, p>0 keeps the p-th element of the batch
// (1-indexed), p<0 keeps the p-th from the end. An out-of-range position
// contributes nothing. When no positions are configured the stage is a
// passthrough.
type BySetPos struct {
	upstream Stage
	setpos   []int
	out      *OrderedInstanceSet
	cursor   int
}

func NewBySetPos(upstream Stage, setpos []int) *BySetPos {
	return &BySetPos{upstream: upstream, setpos: setpos, out: NewOrderedInstanceSet(32)}
}

func (s *BySetPos) NextSet() (*OrderedInstanceSet, error) {
	if len(s.setpos) == 0 {
		return s.upstream.NextSet()
	}
	for empty := 0; ; empty++ {
		if empty >= MaxEmptySets {
			return nil, &OverConstrainedError{Stage: "BYSETPOS"}
		}
		batch, err := s.upstream.NextSet()
		if err != nil {
			return nil, err
		}
		s.out.Clear()
		n := batch.Len()
		for _, p := range s.setpos {
			var idx int
			if p > 0 {
				idx = p - 1
			} else if p < 0 {
				idx = n + p
			} else {
				continue
			}
			if idx < 0 || idx >= n {
				continue
			}
			s.out.Append(batch.At(idx))
		}
		if s.out.Len() == 0 {
			continue
		}
		s.out.Sort()
		return s.out, nil
	}
}

func (s *BySetPos) Next() (Instance, bool, error) {
	if s.cursorExhausted() {
		batch, err := s.NextSet()
		if err != nil {
			return 0, false, err
		}
		s.out = batch
		s.cursor = 0
	}
	v := s.out.At(s.cursor)
	s.cursor++
	return v, true, nil
}

func (s *BySetPos) cursorExhausted() bool {
	return s.out == nil || s.cursor >= s.out.Len()
}
