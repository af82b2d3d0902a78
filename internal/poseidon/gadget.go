package poseidon

import "github.com/consensys/gnark/frontend"

func sboxGadget(api frontend.API, v frontend.Variable) frontend.Variable {
	x2 := api.Mul(v, v)
	x4 := api.Mul(x2, x2)
	x8 := api.Mul(x4, x4)
	x16 := api.Mul(x8, x8)
	return api.Mul(x16, v)
}

func addRoundConstantsGadget(api frontend.API, state [Width]frontend.Variable, p *Params, round int) [Width]frontend.Variable {
	var out [Width]frontend.Variable
	for i := range state {
		out[i] = api.Add(state[i], fieldConst(p.RoundConstants[round][i]))
	}
	return out
}

func applyMDSGadget(api frontend.API, state [Width]frontend.Variable, p *Params) [Width]frontend.Variable {
	var out [Width]frontend.Variable
	for i := 0; i < Width; i++ {
		acc := frontend.Variable(0)
		for j := 0; j < Width; j++ {
			acc = api.Add(acc, api.Mul(fieldConst(p.MDS[i][j]), state[j]))
		}
		out[i] = acc
	}
	return out
}

// PermuteGadget is the in-circuit mirror of Permute; identical round
// structure, same shared constant table.
func PermuteGadget(api frontend.API, state [Width]frontend.Variable) [Width]frontend.Variable {
	p := Shared()
	half := FullRounds / 2
	round := 0

	for r := 0; r < half; r++ {
		state = addRoundConstantsGadget(api, state, p, round)
		for i := range state {
			state[i] = sboxGadget(api, state[i])
		}
		state = applyMDSGadget(api, state, p)
		round++
	}

	for r := 0; r < PartialRounds; r++ {
		state = addRoundConstantsGadget(api, state, p, round)
		state[0] = sboxGadget(api, state[0])
		state = applyMDSGadget(api, state, p)
		round++
	}

	for r := 0; r < half; r++ {
		state = addRoundConstantsGadget(api, state, p, round)
		for i := range state {
			state[i] = sboxGadget(api, state[i])
		}
		state = applyMDSGadget(api, state, p)
		round++
	}

	return state
}

// HashGadget sponges a compile-time-fixed-length slice of Variables,
// matching Hash's absorption pattern exactly so the two always agree.
func HashGadget(api frontend.API, elements []frontend.Variable) frontend.Variable {
	state := [Width]frontend.Variable{0, 0, 0}
	pos := 0
	for _, e := range elements {
		state[pos] = api.Add(state[pos], e)
		pos++
		if pos == Rate {
			state = PermuteGadget(api, state)
			pos = 0
		}
	}
	if pos != 0 {
		state = PermuteGadget(api, state)
	}
	return state[0]
}
