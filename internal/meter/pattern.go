package meter

import (
	"math/bits"
	"strings"
)

// Pattern is a 16-bit bar mask. Lit bars fill from the most significant bit.
type Pattern uint16

// Bars returns the number of lit bars.
func (p Pattern) Bars() int {
	return bits.OnesCount16(uint16(p))
}

// LEDOrder returns the pattern bit-reversed, for displays whose first LED is
// wired to the least significant bit.
func (p Pattern) LEDOrder() uint16 {
	return bits.Reverse16(uint16(p))
}

// String renders the pattern in LED order as 16 '1'/'0' characters, lowest
// bar first.
func (p Pattern) String() string {
	var sb strings.Builder
	sb.Grow(Segments)
	led := p.LEDOrder()
	for i := range Segments {
		if led&(1<<i) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// patternFor returns the MSB-aligned prefix mask with n bars lit.
func patternFor(n int) Pattern {
	if n <= 0 {
		return 0
	}
	return Pattern(uint16(fullPattern) << (Segments - n))
}
