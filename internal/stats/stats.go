// Package stats contains typing speed and accuracy calculations.
package stats

import (
	"math"
	"strings"
	"time"
)

const sparkChars = " .:-=+*#%@"

// charsPerWord is the standard WPM word length.
const charsPerWord = 5.0

// Stats holds running counters for a typing session.
type Stats struct {
	Accuracy     float64 `json:"accuracy"`
	WPM          float64 `json:"wpm"`
	CorrectChars int     `json:"correctChars"`
	TotalChars   int     `json:"totalChars"`
}

// Accuracy returns correct/total as a percentage, or 0 when total is 0.
// Inputs are not validated: correct > total yields more than 100 and
// negative counts yield negative results.
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// WPM returns words per minute rounded to the nearest integer, treating five
// characters as one word. Zero elapsed time yields 0.
func WPM(correctChars int, elapsedSeconds float64) float64 {
	if elapsedSeconds == 0 {
		return 0
	}
	minutes := elapsedSeconds / 60
	return roundHalfUp(float64(correctChars) / charsPerWord / minutes)
}

// Update records one typed character. A zero start time is set to now. The
// returned start time is the one the caller must keep for the next update.
func Update(s Stats, start time.Time, correct bool, now time.Time) (Stats, time.Time) {
	if start.IsZero() {
		start = now
	}
	elapsed := now.Sub(start).Seconds()

	if correct {
		s.CorrectChars++
	}
	s.TotalChars++
	s.Accuracy = Accuracy(s.CorrectChars, s.TotalChars)
	s.WPM = WPM(s.CorrectChars, elapsed)
	return s, start
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
