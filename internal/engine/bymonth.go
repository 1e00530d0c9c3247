package engine

// ByMonth implements §4.5. In LIMIT mode (the base frequency is anything
// but YEARLY) it is a plain filter, wrapped in the generic ByStage like
// every other LIMIT-mode part. EXPAND mode (YEARLY base) needs its own
// Stage implementation, ByMonthStage below: see its doc comment for why.
type ByMonthFilter struct {
	months []int
}

func NewByMonthFilter(months []int) *ByMonthFilter { return &ByMonthFilter{months: months} }

func (b *ByMonthFilter) Filter(inst Instance) bool {
	return !contains(b.months, inst.Month())
}

func (b *ByMonthFilter) Expand(out *OrderedInstanceSet, inst Instance, start Instance) {
	// Never called: ByMonthFilter is only ever used in LIMIT mode.
}

// ByMonthStage is BYMONTH's EXPAND-mode implementation. Unlike the other
// EXPAND stages, it does not merge every configured month for one seed
// into a single downstream batch — it yields exactly one month's
// candidate per NextSet call, cycling through the configured months
// before pulling the next seed. This is what gives BYSETPOS (§4.11,
// spec.md §8 scenario (c): "FREQ=YEARLY;BYMONTH=3,9;BYDAY=TU;
// BYSETPOS=2" selecting the 2nd Tuesday independently in *each* of March
// and September, not the 2nd Tuesday of the combined year) its natural
// per-month granularity — BYMONTH is the coarsest EXPAND stage for a
// YEARLY rule, so its pull boundary is what defines "one period" for
// everything downstream of it, including BYSETPOS. See DESIGN.md's Open
// Question entry on BYMONTH EXPAND granularity.
type ByMonthStage struct {
	upstream Stage
	months   []int
	metrics  CalendarMetrics
	retarget bool // a downstream EXPAND stage replaces the seed's day

	seed     Instance
	haveSeed bool
	idx      int
	out      *OrderedInstanceSet
}

func NewByMonthStage(upstream Stage, months []int, metrics CalendarMetrics, retarget bool) *ByMonthStage {
	return &ByMonthStage{upstream: upstream, months: months, metrics: metrics, retarget: retarget, out: NewOrderedInstanceSet(1)}
}

func (b *ByMonthStage) NextSet() (*OrderedInstanceSet, error) {
	for attempts := 0; ; attempts++ {
		if attempts >= MaxEmptySets {
			return nil, &OverConstrainedError{Stage: "BYMONTH"}
		}
		if !b.haveSeed || b.idx >= len(b.months) {
			batch, err := b.upstream.NextSet()
			if err != nil {
				return nil, err
			}
			b.seed = batch.At(0)
			b.idx = 0
			b.haveSeed = true
		}
		for b.idx < len(b.months) {
			m := b.months[b.idx]
			b.idx++
			dim := b.metrics.DaysInMonth(b.seed.Year(), m)
			cand := b.seed.WithMonth(m)
			if b.seed.Day() > dim {
				if !b.retarget {
					// Non-existent day and nothing downstream will
					// replace it: skip this month.
					continue
				}
				cand = cand.WithDay(dim)
			}
			b.out.Clear()
			b.out.Append(cand)
			b.out.Sort()
			return b.out, nil
		}
		b.haveSeed = false
	}
}

func (b *ByMonthStage) Next() (Instance, bool, error) {
	set, err := b.NextSet()
	if err != nil {
		return 0, false, err
	}
	return set.At(0), true, nil
}

func contains(set []int, v int) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}
