package dec

import (
	"github.com/consensys/gnark/frontend"

	"github.com/hexproof/hexproof/internal/zkcmp"
)

// Var is the in-circuit mirror of Dec: Val is the nonnegative magnitude,
// Neg is a {0,1} variable that MUST be range-constrained by the caller
// (AssertValid) wherever it is freshly allocated from a witness.
type Var struct {
	Val frontend.Variable
	Neg frontend.Variable
}

// NewVar lifts a native Dec into its Variable assignment (for building a
// frontend.Circuit's witness struct; the circuit's Define still must call
// AssertValid on it).
func NewVar(d Dec) Var {
	neg := 0
	if d.Neg {
		neg = 1
	}
	return Var{Val: d.Val, Neg: neg}
}

// AssertValid constrains Neg to be boolean. Spec.md deliberately emits no
// range check on Val beyond what's implicit in whichever bit decomposition
// a caller (Add, CmpLess) performs on it.
func AssertValid(api frontend.API, v Var) {
	api.AssertIsBoolean(v.Neg)
}

func signOf(api frontend.API, neg frontend.Variable) frontend.Variable {
	return api.Select(neg, -1, 1)
}

// Add mirrors the native signed-magnitude addition: compute the signed sum
// s1*val_a + s2*val_b directly in the field, decompose it to recover the
// top (sign) bit, and conditionally negate to recover the magnitude.
func Add(api frontend.API, a, b Var) Var {
	signed := api.Add(api.Mul(a.Val, signOf(api, a.Neg)), api.Mul(b.Val, signOf(api, b.Neg)))
	bits := api.ToBinary(signed)
	signBit := bits[len(bits)-1]
	mag := api.Select(signBit, api.Neg(signed), signed)
	return Var{Val: mag, Neg: signBit}
}

// Negate flips the sign bit unconditionally. Unlike the native operation
// it does not special-case a zero magnitude: per spec.md's documented
// sign-canonicalisation asymmetry, in-circuit arithmetic never canonicalises
// zero, and every predicate built on Var is designed to be insensitive to
// the sign of zero.
func Negate(api frontend.API, a Var) Var {
	return Var{Val: a.Val, Neg: api.Sub(1, a.Neg)}
}

// Sub is Add(a, Negate(b)).
func Sub(api frontend.API, a, b Var) Var {
	return Add(api, a, Negate(api, b))
}

// MulUnscaled multiplies the magnitudes and XORs the sign bits. Result
// precision is 2*Precision; only used where the sign is the only thing
// that matters (the PIP cross product).
func MulUnscaled(api frontend.API, a, b Var) Var {
	return Var{
		Val: api.Mul(a.Val, b.Val),
		Neg: api.Xor(a.Neg, b.Neg),
	}
}

// CmpLess returns 1 if l < r and 0 otherwise, under the same four-way
// sign/magnitude rule as the native CmpLess.
func CmpLess(api frontend.API, l, r Var) frontend.Variable {
	notLNeg := api.Sub(1, l.Neg)
	notRNeg := api.Sub(1, r.Neg)

	case1 := api.And(l.Neg, notRNeg)
	case3 := api.And(api.And(notLNeg, notRNeg), zkcmp.IsLess(api, l.Val, r.Val))
	case4 := api.And(api.And(l.Neg, r.Neg), zkcmp.IsLess(api, r.Val, l.Val))

	return api.Or(api.Or(case1, case3), case4)
}
