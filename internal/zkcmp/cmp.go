// Package zkcmp provides the one boolean-comparison idiom every gadget in
// this module shares: turn frontend.API's three-way Cmp into a 0/1
// less-than flag via IsZero, the same pattern used throughout this
// codebase's circuits for bounded range and index checks.
package zkcmp

import "github.com/consensys/gnark/frontend"

// IsLess returns 1 if a < b and 0 otherwise, for a, b known to be well
// inside the scalar field (true for every magnitude and index this module
// compares: Dec magnitudes are bounded to 128 bits, vertex/hash indices to
// a few thousand).
func IsLess(api frontend.API, a, b frontend.Variable) frontend.Variable {
	c := api.Cmp(a, b)
	return api.IsZero(api.Add(c, 1))
}

// IsGreater returns 1 if a > b and 0 otherwise.
func IsGreater(api frontend.API, a, b frontend.Variable) frontend.Variable {
	c := api.Cmp(a, b)
	return api.IsZero(api.Sub(c, 1))
}
