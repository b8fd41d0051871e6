package stackarena

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
)

// Available returns the number of bytes not yet allocated. Due to
// alignment padding a request for Available() bytes may still fail when
// the capacity is not a multiple of the alignment.
func (a *Arena) Available() int {
	return len(a.buf) - a.cursor
}

// Peak returns the highest number of bytes that were in use at any time.
// It is not cleared by Reset.
func (a *Arena) Peak() int {
	return a.peak
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
// Returns 0.0 if the arena has been released.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.Used()) / float64(capacity)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		Used:        a.Used(),
		Available:   a.Available(),
		Capacity:    a.Capacity(),
		Alignment:   a.Alignment(),
		Peak:        a.Peak(),
		Utilization: a.Utilization(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	Used        int     // Bytes currently allocated
	Available   int     // Bytes left
	Capacity    int     // Total capacity in bytes
	Alignment   int     // Alignment of every allocation
	Peak        int     // High water mark of Used
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}

func (m ArenaMetrics) String() string {
	return fmt.Sprintf("used %s of %s (%.1f%%), peak %s, align %d",
		humanize.IBytes(uint64(m.Used)), humanize.IBytes(uint64(m.Capacity)),
		m.Utilization*100, humanize.IBytes(uint64(m.Peak)), m.Alignment)
}
