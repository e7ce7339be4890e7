package progress

import "math"

// Percent is round(100 * completed / total), or 0 for an empty course.
func Percent(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
