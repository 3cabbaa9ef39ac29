// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// This file implements exact arithmetic over ℚ(√2, i), the field generated
// by 1, 1/√2 and i. Every element is representable exactly as a five-tuple
// (A, B, C, D, E) — see complex.go — and because ℚ(√2, i) is a field, every
// nonzero element has an exact multiplicative inverse in the same
// representation, so div never needs to approximate.

// surdMul computes, for two elements a+b·s and a'+b'·s of ℚ(√2) (s = 1/√2,
// s² = 1/2), the pair (A', B') such that (a+bs)(a'+b's) = (A' + B's) / 2,
// keeping every intermediate value an integer.
func surdMul(a, b, a2, b2 int64) (int64, int64) {
	return 2*a*a2 + b*b2, 2*(a*b2 + a2*b)
}

// Add returns the index of x+y.
func (t *ComplexTable) Add(x, y ComplexID) (ComplexID, error) {
	vx, err := t.valueOf(x)
	if err != nil {
		return 0, err
	}
	vy, err := t.valueOf(y)
	if err != nil {
		return 0, err
	}
	if x == ZERO {
		return y, nil
	}
	if y == ZERO {
		return x, nil
	}
	key := newPairKey(x, y)
	if id, ok := t.addCache[key]; ok {
		t.hit++
		t.logger.Debug().Msg("complex add cache hit")
		return id, nil
	}
	t.miss++
	t.logger.Debug().Msg("complex add cache miss")
	// p/E + q/E' = (p·E' + q·E) / (E·E')
	res := complexValue{
		A: vx.A*vy.E + vy.A*vx.E,
		B: vx.B*vy.E + vy.B*vx.E,
		C: vx.C*vy.E + vy.C*vx.E,
		D: vx.D*vy.E + vy.D*vx.E,
		E: vx.E * vy.E,
	}
	id := t.intern(res)
	t.addCache[key] = id
	return id, nil
}

// Mul returns the index of the product of two or more operands, applied
// pairwise left to right; each pairwise step is memoized, so repeated
// products over shared sub-sequences are cheap.
func (t *ComplexTable) Mul(ids ...ComplexID) (ComplexID, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyInput
	}
	acc := ids[0]
	if _, err := t.valueOf(acc); err != nil {
		return 0, err
	}
	for _, id := range ids[1:] {
		var err error
		acc, err = t.mul2(acc, id)
		if err != nil {
			return 0, err
		}
	}
	return acc, nil
}

func (t *ComplexTable) mul2(x, y ComplexID) (ComplexID, error) {
	vx, err := t.valueOf(x)
	if err != nil {
		return 0, err
	}
	vy, err := t.valueOf(y)
	if err != nil {
		return 0, err
	}
	if x == ZERO || y == ZERO {
		return ZERO, nil
	}
	if x == ONE {
		return y, nil
	}
	if y == ONE {
		return x, nil
	}
	key := newPairKey(x, y)
	if id, ok := t.mulCache[key]; ok {
		t.hit++
		t.logger.Debug().Msg("complex mul cache hit")
		return id, nil
	}
	t.miss++
	t.logger.Debug().Msg("complex mul cache miss")

	rr0, rr1 := surdMul(vx.A, vx.B, vy.A, vy.B)
	ii0, ii1 := surdMul(vx.C, vx.D, vy.C, vy.D)
	ri0, ri1 := surdMul(vx.A, vx.B, vy.C, vy.D)
	ir0, ir1 := surdMul(vx.C, vx.D, vy.A, vy.B)

	res := complexValue{
		A: rr0 - ii0,
		B: rr1 - ii1,
		C: ri0 + ir0,
		D: ri1 + ir1,
		E: 2 * vx.E * vy.E,
	}
	id := t.intern(res)
	t.mulCache[key] = id
	return id, nil
}

// realInverse inverts a real element (C=D=0) of ℚ(√2), returning its
// canonical tuple, or an error if the element is zero.
func realInverse(v complexValue) (complexValue, error) {
	// v = (A + Bs)/E; conjugate over √2 is (A - Bs)/E; their product is a
	// plain rational num/den = (2A²-B²) / (2E²).
	num := 2*v.A*v.A - v.B*v.B
	den := 2 * v.E * v.E
	if num == 0 {
		return complexValue{}, ErrDivByZero
	}
	// 1/v = conj(v) * den/num = (A - Bs)·den / (E·num)
	return complexValue{A: v.A * den, B: -v.B * den, C: 0, D: 0, E: v.E * num}, nil
}

// Reciprocal returns the index of 1/id, for nonzero id.
func (t *ComplexTable) Reciprocal(id ComplexID) (ComplexID, error) {
	if id == ZERO {
		return 0, ErrDivByZero
	}
	if id == ONE {
		return ONE, nil
	}
	v, err := t.valueOf(id)
	if err != nil {
		return 0, err
	}
	if v.C == 0 && v.D == 0 {
		inv, err := realInverse(v)
		if err != nil {
			return 0, err
		}
		return t.intern(inv), nil
	}
	conj, err := t.Conj(id)
	if err != nil {
		return 0, err
	}
	mag2, err := t.mul2(id, conj)
	if err != nil {
		return 0, err
	}
	magVal, err := t.valueOf(mag2)
	if err != nil {
		return 0, err
	}
	invMag, err := realInverse(magVal)
	if err != nil {
		return 0, err
	}
	invMagID := t.intern(invMag)
	return t.mul2(conj, invMagID)
}

// Div returns the index of num/den, per §4.1's special cases.
func (t *ComplexTable) Div(num, den ComplexID) (ComplexID, error) {
	if den == ZERO {
		return 0, ErrDivByZero
	}
	if num == ZERO {
		return ZERO, nil
	}
	if den == ONE {
		return num, nil
	}
	if num == den {
		return ONE, nil
	}
	recip, err := t.Reciprocal(den)
	if err != nil {
		return 0, err
	}
	return t.mul2(num, recip)
}
