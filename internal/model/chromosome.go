package model

// Chromosome is a pair of permutations driving one GA candidate: BPS
// orders the boxes to attempt placement in, CLS orders the containers to
// fill. Both are permutations of {0, ..., n-1} over their respective
// index spaces.
type Chromosome struct {
	BPS     []int
	CLS     []int
	Fitness float64
}

// Clone returns a deep copy of c so mutation/crossover never aliases a
// parent's gene slices.
func (c Chromosome) Clone() Chromosome {
	bps := make([]int, len(c.BPS))
	copy(bps, c.BPS)
	cls := make([]int, len(c.CLS))
	copy(cls, c.CLS)
	return Chromosome{BPS: bps, CLS: cls, Fitness: c.Fitness}
}
