package noise

import (
	"math"
	"testing"
)

func TestPerlinDeterministic(t *testing.T) {
	a := NewPerlin(42)
	b := NewPerlin(42)
	for y := -10.0; y < 10.0; y += 0.73 {
		for x := -10.0; x < 10.0; x += 0.73 {
			if va, vb := a.Eval2(x, y), b.Eval2(x, y); va != vb {
				t.Fatalf("same seed diverged at (%.2f,%.2f): %f != %f", x, y, va, vb)
			}
		}
	}
}

func TestPerlinSeedsDiffer(t *testing.T) {
	a := NewPerlin(1)
	b := NewPerlin(2)
	var diff int
	for i := 0; i < 100; i++ {
		x := float64(i)*0.37 + 0.1
		if a.Eval2(x, x*1.7) != b.Eval2(x, x*1.7) {
			diff++
		}
	}
	if diff == 0 {
		t.Fatal("seeds 1 and 2 produced identical fields")
	}
}

func TestPerlinRange(t *testing.T) {
	p := NewPerlin(7)
	for y := -20.0; y < 20.0; y += 0.31 {
		for x := -20.0; x < 20.0; x += 0.31 {
			v := p.Eval2(x, y)
			if math.IsNaN(v) || v < -1.5 || v > 1.5 {
				t.Fatalf("noise at (%.2f,%.2f) out of range: %f", x, y, v)
			}
		}
	}
}

func TestPerlinContinuousAtLattice(t *testing.T) {
	// Integer coordinates fall exactly on lattice points; the field
	// must not jump there.
	p := NewPerlin(99)
	const eps = 1e-6
	for i := -3; i <= 3; i++ {
		x := float64(i)
		at := p.Eval2(x, 0.5)
		before := p.Eval2(x-eps, 0.5)
		after := p.Eval2(x+eps, 0.5)
		if math.Abs(at-before) > 1e-3 || math.Abs(at-after) > 1e-3 {
			t.Fatalf("discontinuity at lattice x=%d: %f / %f / %f", i, before, at, after)
		}
	}
}

func TestNoiseRangeAndDeterminism(t *testing.T) {
	a := NewNoise(5, 0.5, 2.0, 100, 1234)
	b := NewNoise(5, 0.5, 2.0, 100, 1234)
	for y := 0.0; y < 1000; y += 37.3 {
		for x := 0.0; x < 1000; x += 37.3 {
			va := a.Eval2(x, y)
			if va < 0 || va > 1 || math.IsNaN(va) {
				t.Fatalf("fractal noise at (%.1f,%.1f) out of [0,1]: %f", x, y, va)
			}
			if vb := b.Eval2(x, y); va != vb {
				t.Fatalf("fractal noise not deterministic at (%.1f,%.1f)", x, y)
			}
		}
	}
}

func TestNoiseAmplitudesDecrease(t *testing.T) {
	n := NewNoise(6, 0.5, 2.0, 100, 1)
	for i := 1; i < len(n.Amplitudes); i++ {
		if n.Amplitudes[i] >= n.Amplitudes[i-1] {
			t.Fatalf("amplitude %d (%f) not below amplitude %d (%f)",
				i, n.Amplitudes[i], i-1, n.Amplitudes[i-1])
		}
	}
}

func TestNoiseSetScaleMatchesFresh(t *testing.T) {
	// Updating scale in place must behave exactly like a generator
	// built with that scale, since the permutation tables are reused.
	updated := NewNoise(4, 0.5, 2.0, 100, 555)
	updated.SetScale(250)
	fresh := NewNoise(4, 0.5, 2.0, 250, 555)
	for x := 0.0; x < 500; x += 13.7 {
		if a, b := updated.Eval2(x, x*0.7), fresh.Eval2(x, x*0.7); a != b {
			t.Fatalf("in-place scale update diverged at x=%.1f: %f != %f", x, a, b)
		}
	}
}

func TestNoiseSetPersistenceMatchesFresh(t *testing.T) {
	updated := NewNoise(4, 0.5, 2.0, 100, 555)
	updated.SetPersistence(0.7)
	fresh := NewNoise(4, 0.7, 2.0, 100, 555)
	for x := 0.0; x < 500; x += 13.7 {
		if a, b := updated.Eval2(x, x*0.7), fresh.Eval2(x, x*0.7); a != b {
			t.Fatalf("in-place persistence update diverged at x=%.1f: %f != %f", x, a, b)
		}
	}
}

func TestNoiseSetOctavesRebuilds(t *testing.T) {
	updated := NewNoise(3, 0.5, 2.0, 100, 555)
	updated.SetOctaves(5)
	fresh := NewNoise(5, 0.5, 2.0, 100, 555)
	for x := 0.0; x < 500; x += 13.7 {
		if a, b := updated.Eval2(x, x*0.7), fresh.Eval2(x, x*0.7); a != b {
			t.Fatalf("octave rebuild diverged at x=%.1f: %f != %f", x, a, b)
		}
	}
}

func TestNoiseStrideDecorrelatesOctaves(t *testing.T) {
	// Different strides shift the per-octave seeds, so the fields must
	// differ beyond the first octave.
	a := NewNoiseWithStride(4, 0.5, 2.0, 100, 1, 1013)
	b := NewNoiseWithStride(4, 0.5, 2.0, 100, 1, 7)
	var diff int
	for x := 0.0; x < 500; x += 13.7 {
		if a.Eval2(x, x) != b.Eval2(x, x) {
			diff++
		}
	}
	if diff == 0 {
		t.Fatal("stride change did not affect the combined field")
	}
}

func TestNoiseWithParamsLeavesOriginal(t *testing.T) {
	n := NewNoise(4, 0.5, 2.0, 100, 555)
	before := n.Eval2(12.3, 45.6)

	d := n.WithParams(250, 0.7, 2.2)
	if got := n.Eval2(12.3, 45.6); got != before {
		t.Fatalf("WithParams mutated the original: %f -> %f", before, got)
	}
	if n.Scale != 100 || n.Persistence != 0.5 || n.Lacunarity != 2.0 {
		t.Fatal("WithParams changed the original's parameters")
	}

	// The derived field matches a freshly built one.
	fresh := NewNoise(4, 0.7, 2.2, 250, 555)
	for x := 0.0; x < 300; x += 11.3 {
		if d.Eval2(x, x*0.7) != fresh.Eval2(x, x*0.7) {
			t.Fatalf("derived field differs from fresh instance at x=%f", x)
		}
	}
}

func TestPlusOneOctave(t *testing.T) {
	n := NewNoise(3, 0.5, 2.0, 100, 9)
	m := n.PlusOneOctave()
	if m.Octaves != 4 {
		t.Fatalf("expected 4 octaves, got %d", m.Octaves)
	}
	if m.Seed != n.Seed || m.Persistence != n.Persistence {
		t.Fatal("PlusOneOctave changed unrelated parameters")
	}
}
