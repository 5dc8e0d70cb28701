package biquad

// FiltFilt returns a zero-phase filtered copy of in.
//
// The section runs forward over the buffer, the result is time-reversed,
// filtered again from zero state and reversed back. The magnitude response is
// applied twice (squared) and the phase response cancels. There is no edge
// padding, so the first and last few time constants carry start-up
// transients; callers should pass buffers that are long compared to the
// filter's impulse response.
func FiltFilt(c Coefficients, in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	FiltFiltInPlace(c, out)

	return out
}

// FiltFiltInPlace is the in-place variant of [FiltFilt].
func FiltFiltInPlace(c Coefficients, buf []float64) {
	s := NewSection(c)

	s.ProcessBlock(buf)
	reverse(buf)

	s.Reset()
	s.ProcessBlock(buf)
	reverse(buf)
}

// FiltFilt runs every section of the cascade zero-phase, one section after
// the other, and returns the filtered copy.
func (c *Chain) FiltFilt(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)

	for i := range c.sections {
		FiltFiltInPlace(c.sections[i].Coefficients, out)
	}

	return out
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
