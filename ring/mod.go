package ring

import "math/bits"

// Mod is arithmetic modulo a fixed positive modulus of up to 64 bits.
// Values are uint64 residues in [0, modulus).
type Mod struct {
	m uint64
}

// NewMod returns arithmetic modulo m
func NewMod(m uint64) (Mod, error) {
	if m == 0 {
		return Mod{}, ErrZeroModulus
	}
	return Mod{m: m}, nil
}

// MustMod is like NewMod but panics on a zero modulus
func MustMod(m uint64) Mod {
	r, err := NewMod(m)
	if err != nil {
		panic(err)
	}
	return r
}

// Modulus returns the modulus
func (r Mod) Modulus() uint64 {
	return r.m
}

// Zero returns 0
func (r Mod) Zero() uint64 {
	return 0
}

// One returns 1 mod m, which is 0 when m == 1
func (r Mod) One() uint64 {
	return 1 % r.m
}

// Add returns (x + y) mod m for residues x and y
func (r Mod) Add(x, y uint64) uint64 {
	sum, carry := bits.Add64(x, y, 0)
	if carry != 0 || sum >= r.m {
		sum -= r.m
	}
	return sum
}

// Mul returns (x * y) mod m using a 128-bit product
func (r Mod) Mul(x, y uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	// hi < m because x, y < m
	return bits.Rem64(hi, lo, r.m)
}
