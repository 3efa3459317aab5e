package fibonacci

import (
	"context"
	"fmt"
	"math/big"
	"math/bits"
)

// FastDoublingMod computes F(n) mod m with the fast doubling identities,
// reducing after every operation. Memory stays O(log m) whatever n is, which
// is what makes the last-K-digits mode usable for huge indices.
// Cancellation is checked once per bit of n.
func FastDoublingMod(ctx context.Context, n uint64, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, fmt.Errorf("modulus must be positive")
	}

	fk := big.NewInt(0)
	fk1 := big.NewInt(1)
	doubled := new(big.Int)
	sumSq := new(big.Int)

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// F(2k) = F(k) * (2*F(k+1) - F(k)) mod m. Mod is Euclidean in
		// math/big, so the difference is already non-negative.
		doubled.Lsh(fk1, 1)
		doubled.Sub(doubled, fk)
		doubled.Mod(doubled, m)
		doubled.Mul(doubled, fk)
		doubled.Mod(doubled, m)

		// F(2k+1) = F(k+1)² + F(k)² mod m
		sumSq.Mul(fk1, fk1)
		fk.Mul(fk, fk)
		sumSq.Add(sumSq, fk)
		sumSq.Mod(sumSq, m)

		fk.Set(doubled)
		fk1.Set(sumSq)

		if (n>>uint(i))&1 == 1 {
			doubled.Add(fk, fk1)
			doubled.Mod(doubled, m)
			fk.Set(fk1)
			fk1.Set(doubled)
		}
	}

	// F(0) = 0 needs no reduction; F(1) = 1 does when m == 1.
	return fk.Mod(fk, m), nil
}
