package tui

import (
	"strings"
	"testing"
)

func TestMetricsModel_UpdateMemStats(t *testing.T) {
	m := NewMetricsModel()
	msg := MemStatsMsg{
		Alloc:        50 << 20,
		HeapInuse:    80 << 20,
		NumGC:        10,
		PauseTotalNs: 2_500_000,
		NumGoroutine: 8,
	}
	m.UpdateMemStats(msg)

	if m.alloc != msg.Alloc || m.heapInuse != msg.HeapInuse || m.numGC != msg.NumGC || m.numGoroutine != msg.NumGoroutine {
		t.Errorf("mem stats not applied: %+v", m)
	}
}

func TestMetricsModel_Counters(t *testing.T) {
	m := NewMetricsModel()
	m.RecordReport(sampleReport("97", true, 2))
	m.RecordReport(sampleReport("100", false, 1))
	mismatch := sampleReport("91", false, 1)
	mismatch.Parallel.Prime = true
	m.RecordReport(mismatch)
	m.RecordRejected()

	if m.checked != 3 || m.primes != 1 || m.mismatches != 1 || m.rejected != 1 {
		t.Errorf("counters = checked %d primes %d mismatches %d rejected %d", m.checked, m.primes, m.mismatches, m.rejected)
	}
}

func TestMetricsModel_View(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(60, 8)
	m.UpdateMemStats(MemStatsMsg{Alloc: 2048, HeapInuse: 4096, NumGC: 3, PauseTotalNs: 1_500_000, NumGoroutine: 5})
	m.RecordReport(sampleReport("97", true, 2))

	view := m.View()
	for _, want := range []string{"Heap:", "2.0 KiB", "GC:", "3 (1.5ms)", "Checked:", "Primes:", "Goroutines:", "Rejected:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Mismatches:") {
		t.Error("mismatch row should be hidden when there are none")
	}
}
