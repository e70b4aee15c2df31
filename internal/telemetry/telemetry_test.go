package telemetry

import (
	"testing"
	"time"
)

func TestRegistryRecord(t *testing.T) {
	r := NewRegistry()

	r.Record("url", "Scam", 4*time.Millisecond)
	r.Record("url", "Scam", 2*time.Millisecond)
	r.Record("url", "Legitimate", 6*time.Millisecond)

	s := r.GetStats("url")
	if s.Channel != "url" {
		t.Errorf("channel = %q, want url", s.Channel)
	}
	if s.TotalAnalyses != 3 {
		t.Errorf("total = %d, want 3", s.TotalAnalyses)
	}
	if s.Categories["Scam"] != 2 || s.Categories["Legitimate"] != 1 {
		t.Errorf("categories = %v", s.Categories)
	}
	if s.AvgLatencyMs != 4.0 {
		t.Errorf("avg latency = %v, want 4.0", s.AvgLatencyMs)
	}
}

func TestRegistryLatencyWindowWraps(t *testing.T) {
	r := NewRegistry()

	// Fill the window with slow samples, then overwrite it with fast ones.
	for i := 0; i < latencyWindowSize; i++ {
		r.Record("message", "Legitimate", 100*time.Millisecond)
	}
	for i := 0; i < latencyWindowSize; i++ {
		r.Record("message", "Legitimate", 1*time.Millisecond)
	}

	s := r.GetStats("message")
	if s.TotalAnalyses != 2*latencyWindowSize {
		t.Errorf("total = %d, want %d", s.TotalAnalyses, 2*latencyWindowSize)
	}
	if s.AvgLatencyMs != 1.0 {
		t.Errorf("avg latency = %v, want 1.0 after window wrap", s.AvgLatencyMs)
	}
	if s.P95LatencyMs != 1.0 {
		t.Errorf("p95 latency = %v, want 1.0 after window wrap", s.P95LatencyMs)
	}
}

func TestRegistryUnknownChannelEmpty(t *testing.T) {
	r := NewRegistry()

	s := r.GetStats("email")
	if s.TotalAnalyses != 0 || s.AvgLatencyMs != 0 || s.P95LatencyMs != 0 {
		t.Errorf("empty channel stats = %+v", s)
	}
}

func TestRegistryAllStats(t *testing.T) {
	r := NewRegistry()
	r.Record("url", "Scam", time.Millisecond)
	r.Record("number", "Legitimate", time.Millisecond)

	stats := r.AllStats()
	if len(stats) != 2 {
		t.Fatalf("got %d channels, want 2", len(stats))
	}
	seen := map[string]bool{}
	for _, s := range stats {
		seen[s.Channel] = true
	}
	if !seen["url"] || !seen["number"] {
		t.Errorf("channels = %v", seen)
	}
}
