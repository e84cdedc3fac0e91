package ring

import "math/big"

// Big is exact arithmetic on *big.Int.
// Every result is a freshly allocated value, so results may be retained
// and shared freely.
type Big struct{}

// Zero returns a new 0
func (Big) Zero() *big.Int {
	return new(big.Int)
}

// One returns a new 1
func (Big) One() *big.Int {
	return big.NewInt(1)
}

// Add returns x + y
func (Big) Add(x, y *big.Int) *big.Int {
	return new(big.Int).Add(x, y)
}

// Mul returns x * y
func (Big) Mul(x, y *big.Int) *big.Int {
	return new(big.Int).Mul(x, y)
}
