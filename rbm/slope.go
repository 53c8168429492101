package rbm

import "math"

// linearFit runs an ordinary least-squares regression over the last window
// points of series. The x-axis is epoch time relative to the newest point:
// the most recent point sits at x = 0, the one before at x = -1, and so on.
// The returned slope is therefore the change per epoch going forward, and
// the intercept is the fitted level at the current epoch.
func linearFit(series []float64, window int) (m, b float64) {
	if window > len(series) {
		window = len(series)
	}
	if window < 2 {
		return 0, 0
	}
	tail := series[len(series)-window:]

	var sx, sy, sxx, sxy float64
	for i, y := range tail {
		x := float64(i - (window - 1))
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}
	n := float64(window)
	den := n*sxx - sx*sx
	if den == 0 {
		return 0, 0
	}
	m = (n*sxy - sx*sy) / den
	b = (sy - m*sx) / n
	return m, b
}

// Slope returns the fitted local trend of the last window points of series.
func Slope(series []float64, window int) float64 {
	m, _ := linearFit(series, window)
	return m
}

// Forecast projects the fitted line ahead epochs past the newest point. It
// shares Slope's regression and exists for asymptotic-bound reporting; the
// stopping decision itself only reads the slope.
func Forecast(series []float64, window, ahead int) float64 {
	m, b := linearFit(series, window)
	return m*float64(ahead) + b
}

// plateau decides when an error trajectory has flattened out. Absolute
// error scale is dataset-dependent, so the signal is the rate of
// improvement relative to its initial rate: train for at least min epochs,
// record the slope at epoch min, then stop once |current/initial| drops
// under the threshold, or unconditionally at epoch max.
type plateau struct {
	window    int
	min, max  int
	threshold float64

	initial float64
	ratio   float64
}

// done inspects the trajectory after each appended epoch error and reports
// whether training should stop.
func (p *plateau) done(traj []float64) bool {
	n := len(traj)
	switch {
	case n < p.min:
		return false
	case n == p.min:
		p.initial = Slope(traj, p.window)
		// An already-flat start cannot improve relative to itself.
		return p.initial == 0
	case n >= p.max:
		return true
	}
	p.ratio = math.Abs(Slope(traj, p.window) / p.initial)
	return p.ratio < p.threshold
}
