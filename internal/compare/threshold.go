package compare

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseThreshold accepts "200%" or a plain ratio such as "2" or "1.5".
func ParseThreshold(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultThreshold, nil
	}

	percent := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid threshold %q: %w", s, err)
	}
	if percent {
		v /= 100
	}
	if v <= 0 {
		return 0, fmt.Errorf("threshold must be positive, got %q", s)
	}
	return v, nil
}

func FormatThreshold(v float64) string {
	return strconv.FormatFloat(v*100, 'f', -1, 64) + "%"
}
