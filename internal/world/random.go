package world

import (
	"fmt"
	"math"
)

// Subtractive generator constants (Knuth, Seminumerical Algorithms 3.2.2).
const (
	mbig  = math.MaxInt32
	mseed = 161803398
)

// Generator is the seeded cursor every piece of puzzle vocabulary is drawn from.
// Given the same seed and the same sequence of calls it yields the same values
// on every platform, which is what lets a printed manual match a session.
type Generator struct {
	seed      int32
	inext     int
	inextp    int
	seedArray [56]int32
}

// NewGenerator seeds a generator.
func NewGenerator(seed int32) *Generator {
	g := &Generator{seed: seed}

	subtraction := int32(mbig)
	if seed != math.MinInt32 {
		subtraction = seed
		if subtraction < 0 {
			subtraction = -subtraction
		}
	}

	mj := int32(mseed) - subtraction
	g.seedArray[55] = mj
	mk := int32(1)
	for i := 1; i < 55; i++ {
		ii := (21 * i) % 55
		g.seedArray[ii] = mk
		mk = mj - mk
		if mk < 0 {
			mk += mbig
		}
		mj = g.seedArray[ii]
	}

	for k := 1; k < 5; k++ {
		for i := 1; i < 56; i++ {
			g.seedArray[i] -= g.seedArray[1+(i+30)%55]
			if g.seedArray[i] < 0 {
				g.seedArray[i] += mbig
			}
		}
	}

	g.inext = 0
	g.inextp = 21
	return g
}

// Seed returns the value the generator was created with.
func (g *Generator) Seed() int32 { return g.seed }

func (g *Generator) internalSample() int32 {
	next := g.inext + 1
	if next >= 56 {
		next = 1
	}
	nextp := g.inextp + 1
	if nextp >= 56 {
		nextp = 1
	}

	ret := g.seedArray[next] - g.seedArray[nextp]
	if ret == mbig {
		ret--
	}
	if ret < 0 {
		ret += mbig
	}

	g.seedArray[next] = ret
	g.inext = next
	g.inextp = nextp
	return ret
}

func (g *Generator) sample() float64 {
	return float64(g.internalSample()) * (1.0 / mbig)
}

// largeSample covers ranges wider than MaxInt32.
func (g *Generator) largeSample() float64 {
	result := g.internalSample()
	if g.internalSample()%2 == 0 {
		result = -result
	}
	d := float64(result)
	d += mbig - 1
	d /= 2*mbig - 1
	return d
}

// Next returns an integer in [min, max). min == max returns min.
// A min greater than max is a programming error and panics.
func (g *Generator) Next(min, max int) int {
	if min > max {
		panic(fmt.Sprintf("world: Next(%d, %d): min greater than max", min, max))
	}
	span := int64(max) - int64(min)
	if span <= math.MaxInt32 {
		return int(g.sample()*float64(span)) + min
	}
	return int(int64(g.largeSample()*float64(span)) + int64(min))
}

// NextDouble returns a fraction in [0, 1).
func (g *Generator) NextDouble() float64 {
	return g.sample()
}
