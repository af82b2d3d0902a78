package poseidon

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

func sbox(e *fr.Element) {
	var x2, x4, x8, x16 fr.Element
	x2.Square(e)
	x4.Square(&x2)
	x8.Square(&x4)
	x16.Square(&x8)
	e.Mul(&x16, e)
}

func addRoundConstants(state *[Width]fr.Element, p *Params, round int) {
	for i := range state {
		state[i].Add(&state[i], &p.RoundConstants[round][i])
	}
}

func applyMDS(state *[Width]fr.Element, p *Params) {
	var out [Width]fr.Element
	for i := 0; i < Width; i++ {
		var acc fr.Element
		for j := 0; j < Width; j++ {
			var term fr.Element
			term.Mul(&p.MDS[i][j], &state[j])
			acc.Add(&acc, &term)
		}
		out[i] = acc
	}
	*state = out
}

// Permute runs the full HADES-style Poseidon permutation in place: half
// the full rounds, then the partial rounds (S-box on lane 0 only), then
// the remaining full rounds.
func Permute(state *[Width]fr.Element) {
	p := Shared()
	half := FullRounds / 2
	round := 0

	for r := 0; r < half; r++ {
		addRoundConstants(state, p, round)
		for i := range state {
			sbox(&state[i])
		}
		applyMDS(state, p)
		round++
	}

	for r := 0; r < PartialRounds; r++ {
		addRoundConstants(state, p, round)
		sbox(&state[0])
		applyMDS(state, p)
		round++
	}

	for r := 0; r < half; r++ {
		addRoundConstants(state, p, round)
		for i := range state {
			sbox(&state[i])
		}
		applyMDS(state, p)
		round++
	}
}

// Hash sponges an arbitrary slice of field elements into one digest,
// absorbing Rate elements per permutation call and squeezing the first
// state lane at the end.
func Hash(elements []fr.Element) fr.Element {
	var state [Width]fr.Element
	pos := 0
	for _, e := range elements {
		state[pos].Add(&state[pos], &e)
		pos++
		if pos == Rate {
			Permute(&state)
			pos = 0
		}
	}
	if pos != 0 {
		Permute(&state)
	}
	return state[0]
}
