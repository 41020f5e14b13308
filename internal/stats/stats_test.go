package stats

import (
	"testing"
	"time"
)

func TestAccuracy(t *testing.T) {
	cases := []struct {
		correct, total int
		want           float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 2, 50},
		{10, 10, 100},
		{0, 4, 0},
		// Not clamped or validated.
		{3, 2, 150},
		{-1, 4, -25},
	}
	for _, tc := range cases {
		if got := Accuracy(tc.correct, tc.total); got != tc.want {
			t.Fatalf("Accuracy(%d, %d) = %v, want %v", tc.correct, tc.total, got, tc.want)
		}
	}
}

func TestAccuracyBounds(t *testing.T) {
	for total := 1; total <= 50; total++ {
		for correct := 0; correct <= total; correct++ {
			acc := Accuracy(correct, total)
			if acc < 0 || acc > 100 {
				t.Fatalf("Accuracy(%d, %d) = %v out of bounds", correct, total, acc)
			}
		}
	}
}

func TestWPM(t *testing.T) {
	cases := []struct {
		correct int
		seconds float64
		want    float64
	}{
		{50, 60, 10},
		{25, 30, 10},
		{7, 60, 1},
		{8, 60, 2},
		{0, 10, 0},
		{-50, 60, -10},
	}
	for _, tc := range cases {
		if got := WPM(tc.correct, tc.seconds); got != tc.want {
			t.Fatalf("WPM(%d, %v) = %v, want %v", tc.correct, tc.seconds, got, tc.want)
		}
	}
}

func TestWPMZeroTime(t *testing.T) {
	for _, x := range []int{-10, 0, 1, 1000} {
		if got := WPM(x, 0); got != 0 {
			t.Fatalf("WPM(%d, 0) = %v, want 0", x, got)
		}
	}
}

func TestUpdateAccumulates(t *testing.T) {
	now := time.Unix(1000, 0)
	s, start := Update(Stats{}, time.Time{}, true, now)
	if !start.Equal(now) {
		t.Fatalf("expected start time to be set on first update")
	}
	if s.WPM != 0 {
		t.Fatalf("expected zero wpm at zero elapsed time, got %v", s.WPM)
	}
	s, start2 := Update(s, start, false, now.Add(12*time.Second))
	if !start2.Equal(start) {
		t.Fatalf("expected start time to be kept")
	}
	if s.CorrectChars != 1 || s.TotalChars != 2 || s.Accuracy != 50 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	// 1 char / 5 / 0.2 min = 1 wpm
	if s.WPM != 1 {
		t.Fatalf("expected 1 wpm, got %v", s.WPM)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
	line := Sparkline([]float64{0, 5, 10})
	if len(line) != 3 || line[0] != ' ' || line[2] != '@' {
		t.Fatalf("unexpected sparkline %q", line)
	}
	if flat := Sparkline([]float64{3, 3}); flat != "++" {
		t.Fatalf("unexpected flat sparkline %q", flat)
	}
}
