// SPDX-License-Identifier: GPL-2.0-or-later

// Package workload generates synthetic block-id traces for tests and
// for the simulator's own tier-promotion coin flip, drawing on
// golang.org/x/exp/rand rather than math/rand so a Zipf-distributed
// generator is available without hand-rolling one.
package workload

import "golang.org/x/exp/rand"

// Source is a uniform integer draw over [0, n). The migration engine
// uses it as its migration_frequency promotion coin flip: a draw of 0
// out of n means "promote".
type Source interface {
	Uniform(n uint) uint
}

// randSource adapts *rand.Rand to Source.
type randSource struct {
	r *rand.Rand
}

// NewUniform returns a Source drawing uniformly, seeded explicitly so
// simulation runs (and tests) are reproducible.
func NewUniform(seed uint64) Source {
	return &randSource{r: rand.New(rand.NewSource(seed))}
}

func (s *randSource) Uniform(n uint) uint {
	if n == 0 {
		return 0
	}
	return uint(s.r.Intn(int(n)))
}

// Zipf generates block ids over [0, imax] skewed toward the low end,
// matching real-world hot/cold working-set access patterns far better
// than a uniform draw.
type Zipf struct {
	z *rand.Zipf
}

// NewZipf returns a Zipf generator over block ids in [0, imax], with
// skew parameters s (> 1, larger means more skew) and v (>= 1, shifts
// the distribution's plateau). seed is explicit so generated traces
// are reproducible across runs.
func NewZipf(seed uint64, s, v float64, imax uint64) *Zipf {
	r := rand.New(rand.NewSource(seed))
	return &Zipf{z: rand.NewZipf(r, s, v, imax)}
}

// Next draws the next block id.
func (z *Zipf) Next() uint64 {
	return z.z.Uint64()
}

// Access is one synthetic trace access: a read (or, if Write is set, a
// write) of Block.
type Access struct {
	Write bool
	Block uint64
}

// GenerateTrace produces n Zipf-distributed accesses over [0, imax],
// skewed toward the low end by s (> 1; larger means more skew), cycling
// reads and writes in a fixed 3:1 ratio — a simple enough mix to
// exercise both BringBlockToMemory and the dirty-propagation path
// without needing a real trace file.
func GenerateTrace(seed uint64, n int, imax uint64, s float64) []Access {
	z := NewZipf(seed, s, 1, imax)
	out := make([]Access, n)
	for i := range out {
		out[i] = Access{Write: i%4 == 3, Block: z.Next()}
	}
	return out
}
