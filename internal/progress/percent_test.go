package progress

import "testing"

func TestPercent(t *testing.T) {
	tests := []struct {
		completed, total int64
		want             int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 8, 13},
		{199, 200, 100},
	}

	for _, tt := range tests {
		if got := Percent(tt.completed, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestPercentNonDecreasing(t *testing.T) {
	for total := int64(1); total <= 50; total++ {
		prev := Percent(0, total)
		for k := int64(1); k <= total; k++ {
			cur := Percent(k, total)
			if cur < prev {
				t.Fatalf("Percent(%d, %d) = %d dropped below %d", k, total, cur, prev)
			}
			prev = cur
		}
		if prev != 100 {
			t.Fatalf("Percent(%d, %d) = %d, want 100", total, total, prev)
		}
	}
}
