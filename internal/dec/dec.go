// Package dec implements the fixed-point signed-decimal algebra the rest of
// this module's circuit is built on: a nonnegative field-encoded magnitude
// plus a sign bit, representing (-1)^neg * val * 10^-Precision.
//
// Ported from the native Dec<F, PREC> of this codebase's reference
// implementation (zk/fixed_point_decimal.rs): magnitudes are carried as
// BN254 scalar-field elements but are only ever used for values that fit in
// 128 bits, so arithmetic is done by recovering a big.Int, operating on it,
// and saturating back into that range.
package dec

import (
	"errors"
	"math"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Precision is the compile-time scale P: the represented rational is
// val * 10^-Precision. Changing it invalidates any persisted Groth16 keys.
const Precision = 8

// MagnitudeBits is the bit width every Dec magnitude is guaranteed to fit
// in; overflow beyond it saturates rather than wrapping.
const MagnitudeBits = 128

// ErrNonFinite is returned by FromFloat64 for NaN or infinite inputs.
var ErrNonFinite = errors.New("dec: value is not finite")

var maxMagnitude = func() *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), MagnitudeBits)
	return m.Sub(m, big.NewInt(1))
}()

// Dec is a signed-magnitude fixed-point decimal. The zero value represents
// zero (val = 0, neg = false), which is the only canonical representation
// of zero this package ever produces natively.
type Dec struct {
	Val fr.Element
	Neg bool
}

// FromFloat64 truncates |x| * 10^Precision toward zero into the magnitude,
// recording the sign separately. Non-finite inputs are rejected.
func FromFloat64(x float64) (Dec, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Dec{}, ErrNonFinite
	}
	neg := x < 0
	scaled := new(big.Float).Mul(big.NewFloat(math.Abs(x)), scalePow)
	mag, _ := scaled.Int(nil) // Int truncates toward zero.
	return fromMagnitude(neg, mag), nil
}

var scalePow = big.NewFloat(math.Pow(10, Precision))

func (d Dec) magnitude() *big.Int {
	var b big.Int
	d.Val.BigInt(&b)
	return &b
}

func saturate(v *big.Int) *big.Int {
	if v.Sign() < 0 {
		return big.NewInt(0)
	}
	if v.Cmp(maxMagnitude) > 0 {
		return new(big.Int).Set(maxMagnitude)
	}
	return v
}

func fromMagnitude(neg bool, mag *big.Int) Dec {
	mag = saturate(mag)
	var d Dec
	d.Val.SetBigInt(mag)
	d.Neg = neg && mag.Sign() != 0 // canonicalisation invariant
	return d
}

// Negate flips the sign unless the magnitude is zero.
func Negate(a Dec) Dec {
	if a.magnitude().Sign() == 0 {
		return Dec{Val: a.Val, Neg: false}
	}
	return Dec{Val: a.Val, Neg: !a.Neg}
}

// Add performs signed-magnitude addition: same sign saturatingly sums
// magnitudes, opposite sign subtracts the smaller from the larger and
// keeps the larger's sign.
func Add(a, b Dec) Dec {
	am, bm := a.magnitude(), b.magnitude()
	if a.Neg == b.Neg {
		return fromMagnitude(a.Neg, new(big.Int).Add(am, bm))
	}
	if am.Cmp(bm) >= 0 {
		return fromMagnitude(a.Neg, new(big.Int).Sub(am, bm))
	}
	return fromMagnitude(b.Neg, new(big.Int).Sub(bm, am))
}

// Sub is Add(a, Negate(b)).
func Sub(a, b Dec) Dec {
	return Add(a, Negate(b))
}

// MulUnscaled multiplies the two magnitudes in the field and XORs the
// signs. The result sits at precision 2*Precision; callers that only need
// the sign (the geometric predicate below) never descale it.
func MulUnscaled(a, b Dec) Dec {
	var prod fr.Element
	prod.Mul(&a.Val, &b.Val)
	neg := a.Neg != b.Neg && !prod.IsZero()
	return Dec{Val: prod, Neg: neg}
}

// CmpLess reports whether l < r under the four-way sign/magnitude rule:
// negative < positive always; positive < negative never; same-sign
// positive compares magnitudes directly; same-sign negative compares them
// in reverse.
func CmpLess(l, r Dec) bool {
	switch {
	case l.Neg && !r.Neg:
		return true
	case !l.Neg && r.Neg:
		return false
	case !l.Neg && !r.Neg:
		return l.magnitude().Cmp(r.magnitude()) < 0
	default:
		return l.magnitude().Cmp(r.magnitude()) > 0
	}
}

// IsZero reports whether d represents zero.
func (d Dec) IsZero() bool {
	return d.Val.IsZero()
}
