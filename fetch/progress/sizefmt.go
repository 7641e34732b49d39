package progress

import (
	"fmt"
	"math"
)

var sizeUnits = []struct {
	name     string
	decimals int
}{
	{"bytes", 0},
	{"kB", 0},
	{"MB", 2},
	{"GB", 2},
	{"TB", 2},
	{"PB", 2},
}

// FormatBytes renders a byte count using binary (1024-based) units,
// choosing the largest unit whose quotient is at least 1.
func FormatBytes(n int64) string {
	switch {
	case n == 0:
		return "0 bytes"
	case n == 1:
		return "1 byte"
	case n < 0:
		return fmt.Sprintf("%d bytes", n)
	}

	exp := int(math.Log(float64(n)) / math.Log(1024))
	if exp > len(sizeUnits)-1 {
		exp = len(sizeUnits) - 1
	}
	unit := sizeUnits[exp]
	quotient := float64(n) / math.Pow(1024, float64(exp))

	return fmt.Sprintf("%.*f %s", unit.decimals, quotient, unit.name)
}
