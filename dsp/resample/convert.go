package resample

import "math"

// Convert resamples a complete buffer from inRate to outRate.
//
// Unlike the streaming [Resampler.Process], the filter latency is removed:
// the input is padded with zeros to flush the filter, the first
// round(GroupDelay) outputs are dropped and the result is trimmed to
// ceil(len(samples)·outRate/inRate) samples. Equal rates return a copy.
func Convert(samples []float64, inRate, outRate int, opts ...Option) ([]float64, error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, ErrInvalidRate
	}

	if inRate == outRate {
		return append([]float64(nil), samples...), nil
	}

	if len(samples) == 0 {
		return []float64{}, nil
	}

	r, err := NewRational(outRate, inRate, opts...)
	if err != nil {
		return nil, err
	}

	up, down := r.Ratio()
	want := int(math.Ceil(float64(len(samples)) * float64(up) / float64(down)))
	skip := int(math.Round(r.GroupDelay()))

	// Enough trailing zeros to push the last input sample through the
	// filter and cover the dropped head.
	tail := r.maxPhaseLn + (skip*down)/up + 1

	padded := make([]float64, len(samples)+tail)
	copy(padded, samples)

	out := r.Process(padded)
	if skip > len(out) {
		skip = len(out)
	}

	out = out[skip:]
	if len(out) >= want {
		return out[:want], nil
	}

	res := make([]float64, want)
	copy(res, out)

	return res, nil
}
