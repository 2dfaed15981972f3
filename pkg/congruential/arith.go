package congruential

import "math/bits"

// mulMod returns a*x mod m without overflow.
func mulMod(a, x, m uint64) uint64 {
	hi, lo := bits.Mul64(a, x)
	return bits.Rem64(hi, lo, m)
}

// mulAddMod returns (a*x + c*s) mod m without overflow.
func mulAddMod(a, x, c, s, m uint64) uint64 {
	sum, carry := bits.Add64(mulMod(a, x, m), mulMod(c, s, m), 0)
	return bits.Rem64(carry, sum, m)
}

// Width returns the number of decimal digits needed for v, at least one.
func Width(v uint64) int {
	p := 1
	for pow := uint64(10); p < 20 && pow <= v; pow *= 10 {
		p++
	}
	return p
}

// decompose splits v into exactly width digits, most significant first.
func decompose(v uint64, width int) []uint8 {
	digits := make([]uint8, width)
	for i := width - 1; i >= 0; i-- {
		digits[i] = uint8(v % 10)
		v /= 10
	}
	return digits
}
