package xform

import (
	"slices"
	"sort"
)

// Sample is a transform defined at a point in time.
type Sample struct {
	Time      float32
	Transform Transform
}

// Sequence is a time-keyed transform. The zero value is the identity.
//
// A leaf sequence owns samples sorted by time. A composed sequence owns no
// samples; it keeps its factors, outermost first, and multiplies their
// evaluations on demand.
type Sequence struct {
	samples []Sample
	factors []Sequence
}

// Identity returns the identity sequence.
func Identity() Sequence {
	return Sequence{}
}

// Constant returns a sequence with a single sample at time 0.
func Constant(t Transform) Sequence {
	var s Sequence
	s.Set(0, t)
	return s
}

// Set defines the transform at time, replacing an existing sample at the same time.
// Set on a composed sequence turns it into a leaf holding only the new sample.
func (s *Sequence) Set(time float32, t Transform) {
	s.factors = nil
	i := sort.Search(len(s.samples), func(i int) bool { return s.samples[i].Time >= time })
	if i < len(s.samples) && s.samples[i].Time == time {
		s.samples[i].Transform = t
		return
	}
	s.samples = slices.Insert(s.samples, i, Sample{Time: time, Transform: t})
}

// Len returns the number of own samples; zero for identity and composed sequences.
func (s Sequence) Len() int {
	return len(s.samples)
}

// Samples returns a copy of the own samples in time order.
func (s Sequence) Samples() []Sample {
	return slices.Clone(s.samples)
}

// Times returns the sorted union of sample times across all factors.
func (s Sequence) Times() []float32 {
	var times []float32
	s.collectTimes(&times)
	slices.Sort(times)
	return slices.Compact(times)
}

func (s Sequence) collectTimes(dst *[]float32) {
	for _, smp := range s.samples {
		*dst = append(*dst, smp.Time)
	}
	for _, f := range s.factors {
		f.collectTimes(dst)
	}
}

// IsIdentity reports whether the sequence evaluates to the identity at every time.
func (s Sequence) IsIdentity() bool {
	for _, smp := range s.samples {
		if !smp.Transform.IsIdentity() {
			return false
		}
	}
	for _, f := range s.factors {
		if !f.IsIdentity() {
			return false
		}
	}
	return true
}

// Compose returns a sequence whose evaluation at t equals a(t) * b(t):
// b is applied first, a is outermost.
func Compose(a, b Sequence) Sequence {
	var factors []Sequence
	factors = appendFactors(factors, a)
	factors = appendFactors(factors, b)
	switch len(factors) {
	case 0:
		return Identity()
	case 1:
		return factors[0]
	}
	return Sequence{factors: factors}
}

func appendFactors(dst []Sequence, s Sequence) []Sequence {
	if s.factors != nil {
		return append(dst, s.factors...)
	}
	if len(s.samples) == 0 {
		return dst
	}
	return append(dst, Sequence{samples: slices.Clone(s.samples)})
}

// Evaluate returns the transform at time. Leaf sequences use the nearest
// sample (ties resolve to the earlier one); composed sequences multiply their
// factors' evaluations left to right.
func (s Sequence) Evaluate(time float32) Transform {
	if s.factors != nil {
		acc := s.factors[0].Evaluate(time)
		for _, f := range s.factors[1:] {
			acc = acc.Mul(f.Evaluate(time))
		}
		return acc
	}
	return s.nearest(time)
}

func (s Sequence) nearest(time float32) Transform {
	n := len(s.samples)
	if n == 0 {
		return IdentityTransform()
	}
	i := sort.Search(n, func(i int) bool { return s.samples[i].Time >= time })
	switch {
	case i == 0:
		return s.samples[0].Transform
	case i == n:
		return s.samples[n-1].Transform
	}
	before, after := s.samples[i-1], s.samples[i]
	if after.Time-time < time-before.Time {
		return after.Transform
	}
	return before.Transform
}

// Earliest returns the transform at the earliest defined time, or the identity.
func (s Sequence) Earliest() Transform {
	times := s.Times()
	if len(times) == 0 {
		return IdentityTransform()
	}
	return s.Evaluate(times[0])
}
