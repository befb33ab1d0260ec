package stats

// Summary holds single-pass statistics of a sample.
// All fields are zero for an empty sample.
type Summary struct {
	Count int
	Sum   float64
	Min   float64
	Max   float64
}

// Summarize computes count, sum, min and max in one pass, in slice order
func Summarize(values []float64) Summary {
	var s Summary
	for i, v := range values {
		if i == 0 {
			s.Min, s.Max = v, v
		} else if v < s.Min {
			s.Min = v
		} else if v > s.Max {
			s.Max = v
		}
		s.Sum += v
		s.Count++
	}
	return s
}

// Merge combines two summaries as if their samples were concatenated
func (s Summary) Merge(o Summary) Summary {
	if s.Count == 0 {
		return o
	}
	if o.Count == 0 {
		return s
	}
	out := Summary{
		Count: s.Count + o.Count,
		Sum:   s.Sum + o.Sum,
		Min:   s.Min,
		Max:   s.Max,
	}
	if o.Min < out.Min {
		out.Min = o.Min
	}
	if o.Max > out.Max {
		out.Max = o.Max
	}
	return out
}

// Mean returns the arithmetic mean, or 0 for an empty sample
func (s Summary) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) float64 {
	return Summarize(values).Mean()
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
