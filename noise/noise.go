package noise

import (
	"math"
)

// DefaultSeedStride is the seed offset between successive octaves.
// Each octave gets its own permutation table so that octaves are
// decorrelated instead of sampling the same lattice at finer scales.
const DefaultSeedStride = 1013

// prng is a deterministic bit generator used to shuffle permutation
// tables. It is a splitmix-style mixer, which avalanches well enough
// that small seeds (0, 1, 2, ...) don't produce visibly correlated
// permutations.
type prng struct {
	state uint64
}

func newPrng(seed int64) *prng {
	return &prng{state: uint64(seed)}
}

// next returns a float64 in [0, 1).
func (p *prng) next() float64 {
	p.state += 0x9e3779b97f4a7c15
	z := p.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return float64(z>>11) / (1 << 53)
}

// intn returns an int in [0, n).
func (p *prng) intn(n int) int {
	return int(p.next() * float64(n))
}

// Perlin is a 2D gradient noise field backed by a seeded permutation
// table (256 entries shuffled via Fisher-Yates, doubled to 512 so
// corner lookups never need to wrap explicitly).
type Perlin struct {
	perm [512]int
}

// NewPerlin returns a new gradient noise field for the given seed.
// The same seed always yields the same permutation and therefore the
// same field.
func NewPerlin(seed int64) *Perlin {
	var base [256]int
	for i := range base {
		base[i] = i
	}
	rng := newPrng(seed)
	for i := 255; i > 0; i-- {
		j := rng.intn(i + 1)
		base[i], base[j] = base[j], base[i]
	}

	p := &Perlin{}
	for i, v := range base {
		p.perm[i] = v
		p.perm[i+256] = v
	}
	return p
}

// fade is the smootherstep curve t^3*(t*(6t-15)+10). Its first and
// second derivatives vanish at 0 and 1, so cell boundaries are smooth.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad2 selects one of eight gradient directions from the hash and
// returns its dot product with the offset vector.
func grad2(hash int, x, y float64) float64 {
	switch hash & 7 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	case 3:
		return -x - y
	case 4:
		return x
	case 5:
		return -x
	case 6:
		return y
	default:
		return -y
	}
}

// Eval2 returns the noise value at the given point, roughly in [-1, 1].
// Integer-valued coordinates fall exactly on lattice points, where the
// interpolation weights are exactly 0 and the corner's own offset is
// the zero vector, so the field stays continuous there.
func (p *Perlin) Eval2(x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255

	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	u := fade(xf)
	v := fade(yf)

	aa := p.perm[p.perm[xi]+yi]
	ab := p.perm[p.perm[xi]+yi+1]
	ba := p.perm[p.perm[xi+1]+yi]
	bb := p.perm[p.perm[xi+1]+yi+1]

	return lerp(v,
		lerp(u, grad2(aa, xf, yf), grad2(ba, xf-1, yf)),
		lerp(u, grad2(ab, xf, yf-1), grad2(bb, xf-1, yf-1)))
}

// Noise sums multiple octaves of gradient noise into one normalized
// scalar field. Each octave is an independently seeded Perlin field
// (seed offset by octave index times SeedStride), sampled at a
// frequency that grows by Lacunarity per octave and weighted by an
// amplitude that decays by Persistence per octave.
type Noise struct {
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Scale       float64
	Seed        int64
	SeedStride  int64
	Amplitudes  []float64
	fields      []*Perlin
}

// NewNoise returns a new fractal noise generator.
func NewNoise(octaves int, persistence, lacunarity, scale float64, seed int64) *Noise {
	return NewNoiseWithStride(octaves, persistence, lacunarity, scale, seed, DefaultSeedStride)
}

// NewNoiseWithStride returns a new fractal noise generator with a
// custom per-octave seed stride.
func NewNoiseWithStride(octaves int, persistence, lacunarity, scale float64, seed, stride int64) *Noise {
	n := &Noise{
		Octaves:     octaves,
		Persistence: persistence,
		Lacunarity:  lacunarity,
		Scale:       scale,
		Seed:        seed,
		SeedStride:  stride,
	}
	n.rebuild()
	return n
}

// rebuild recreates the per-octave fields and amplitudes. Needed when
// the seed or the octave count changes; parameter-only changes go
// through SetScale / SetPersistence instead.
func (n *Noise) rebuild() {
	n.Amplitudes = make([]float64, n.Octaves)
	n.fields = make([]*Perlin, n.Octaves)
	for i := range n.fields {
		n.Amplitudes[i] = math.Pow(n.Persistence, float64(i))
		n.fields[i] = NewPerlin(n.Seed + int64(i)*n.SeedStride)
	}
}

// Eval2 returns the combined noise value at the given point in [0, 1].
func (n *Noise) Eval2(x, y float64) float64 {
	var sum, sumOfAmplitudes float64
	frequency := 1.0 / n.Scale
	for octave := 0; octave < n.Octaves; octave++ {
		sum += n.Amplitudes[octave] * n.fields[octave].Eval2(x*frequency, y*frequency)
		sumOfAmplitudes += n.Amplitudes[octave]
		frequency *= n.Lacunarity
	}
	// Remap [-1,1] to [0,1]. The gradient set can slightly overshoot
	// unit range, so clamp rather than trust the bound.
	v := (sum/sumOfAmplitudes + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SetScale updates the base sampling scale in place. The permutation
// tables are untouched.
func (n *Noise) SetScale(scale float64) {
	n.Scale = scale
}

// SetPersistence updates the per-octave amplitude decay in place.
func (n *Noise) SetPersistence(persistence float64) {
	n.Persistence = persistence
	for i := range n.Amplitudes {
		n.Amplitudes[i] = math.Pow(persistence, float64(i))
	}
}

// WithParams returns a copy of n with the given scale, persistence and
// lacunarity. The copy shares the per-octave permutation tables, so it
// is cheap to derive, and n itself is left untouched: readers holding n
// keep seeing the old parameters.
func (n *Noise) WithParams(scale, persistence, lacunarity float64) *Noise {
	c := *n
	c.Scale = scale
	c.Persistence = persistence
	c.Lacunarity = lacunarity
	c.Amplitudes = make([]float64, c.Octaves)
	for i := range c.Amplitudes {
		c.Amplitudes[i] = math.Pow(persistence, float64(i))
	}
	return &c
}

// SetOctaves changes the octave count, rebuilding the field list since
// the per-octave seeds shift.
func (n *Noise) SetOctaves(octaves int) {
	n.Octaves = octaves
	n.rebuild()
}

// Reseed replaces the seed and rebuilds every octave field.
func (n *Noise) Reseed(seed int64) {
	n.Seed = seed
	n.rebuild()
}

// PlusOneOctave returns a new Noise with one more octave.
func (n *Noise) PlusOneOctave() *Noise {
	return NewNoiseWithStride(n.Octaves+1, n.Persistence, n.Lacunarity, n.Scale, n.Seed, n.SeedStride)
}
