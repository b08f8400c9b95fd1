// This file generates the thread counts tried by a calibration sweep.

package calibration

// GenerateThreadCounts returns the thread counts to sweep for a host with
// maxThreads hardware threads: every power of two below maxThreads, followed
// by maxThreads itself. A maxThreads below 1 yields [1].
func GenerateThreadCounts(maxThreads int) []int {
	if maxThreads < 1 {
		return []int{1}
	}
	var counts []int
	for k := 1; k < maxThreads; k *= 2 {
		counts = append(counts, k)
	}
	return append(counts, maxThreads)
}
