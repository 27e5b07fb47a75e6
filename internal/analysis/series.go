package analysis

// Peak returns the index and value of the series maximum.
func Peak(values []float64) (int, float64) {
	if len(values) == 0 {
		return -1, 0
	}
	idx := 0
	for i, v := range values {
		if v > values[idx] {
			idx = i
		}
	}
	return idx, values[idx]
}

// Mean returns the arithmetic mean of the series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// DecayTime reports the last time at which the series still exceeded
// frac of its peak value. Times and values pair up by index; extra
// entries on either side are ignored.
func DecayTime(times, values []float64, frac float64) float64 {
	n := len(values)
	if len(times) < n {
		n = len(times)
	}
	if n == 0 {
		return 0
	}

	_, peak := Peak(values[:n])
	if peak <= 0 {
		return 0
	}
	threshold := peak * frac

	last := 0.0
	for i := 0; i < n; i++ {
		if values[i] > threshold {
			last = times[i]
		}
	}
	return last
}
