package fibonacci

import (
	"context"
	"math/big"
	"math/bits"
)

// FastDoubling computes F(n) in O(log n) big-integer multiplications using
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k+1)² + F(k)²
//
// scanning the bits of n from the most significant one.
type FastDoubling struct{}

// Name implements coreCalculator.
func (FastDoubling) Name() string {
	return "Fast Doubling (O(log n))"
}

// CalculateCore implements coreCalculator. Cancellation is checked once per
// bit of n.
func (FastDoubling) CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, _ Options) (*big.Int, error) {
	if reporter == nil {
		reporter = noopReporter
	}

	fk := big.NewInt(0)  // F(k)
	fk1 := big.NewInt(1) // F(k+1)
	t1 := new(big.Int)
	t2 := new(big.Int)

	numBits := bits.Len64(n)
	for i := numBits - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t1.Lsh(fk1, 1)
		t1.Sub(t1, fk)
		t1.Mul(t1, fk)

		t2.Mul(fk1, fk1)
		fk.Mul(fk, fk)
		t2.Add(t2, fk)

		// (fk, fk1) = (F(2k), F(2k+1)); the old buffers become scratch.
		fk, t1 = t1, fk
		fk1, t2 = t2, fk1

		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			fk, fk1, t1 = fk1, t1, fk
		}

		reporter(float64(numBits-i) / float64(numBits))
	}
	return fk, nil
}
