package vectorstore

import (
	"math"
	"testing"
)

func TestFuseScored_WeightedSum(t *testing.T) {
	vector := []Scored{{ID: "A", Score: 0.9}, {ID: "B", Score: 0.4}}
	keyword := []Scored{{ID: "B", Score: 0.8}, {ID: "C", Score: 0.5}}

	fused := FuseScored(vector, keyword, 0.5, 0.5)

	if len(fused) != 3 {
		t.Fatalf("expected 3 fused results, got %d", len(fused))
	}

	want := []Scored{{ID: "B", Score: 0.6}, {ID: "A", Score: 0.45}, {ID: "C", Score: 0.25}}
	for i, w := range want {
		if fused[i].ID != w.ID {
			t.Errorf("position %d: expected %s, got %s", i, w.ID, fused[i].ID)
		}
		if math.Abs(float64(fused[i].Score-w.Score)) > 1e-6 {
			t.Errorf("position %d: expected score %v, got %v", i, w.Score, fused[i].Score)
		}
	}
}

func TestFuseScored_MissingSideContributesZero(t *testing.T) {
	vector := []Scored{{ID: "A", Score: 1.0}}
	fused := FuseScored(vector, nil, 0.5, 0.5)

	if len(fused) != 1 {
		t.Fatalf("expected 1 result, got %d", len(fused))
	}
	if fused[0].Score != 0.5 {
		t.Errorf("expected score 0.5, got %v", fused[0].Score)
	}
}

func TestFuseScored_TieKeepsFirstAppearanceOrder(t *testing.T) {
	vector := []Scored{{ID: "X", Score: 0.6}, {ID: "Y", Score: 0.6}}
	keyword := []Scored{{ID: "Z", Score: 0.6}}

	fused := FuseScored(vector, keyword, 0.5, 0.5)

	got := []string{fused[0].ID, fused[1].ID, fused[2].ID}
	want := []string{"X", "Y", "Z"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s (tie order must follow first appearance)", i, want[i], got[i])
		}
	}
}

func TestFuseScored_AsymmetricWeights(t *testing.T) {
	vector := []Scored{{ID: "A", Score: 0.5}}
	keyword := []Scored{{ID: "A", Score: 0.5}}

	fused := FuseScored(vector, keyword, 1.0, 0.0)
	if fused[0].Score != 0.5 {
		t.Errorf("expected keyword side ignored, got %v", fused[0].Score)
	}
}

func TestFuseScored_Empty(t *testing.T) {
	fused := FuseScored(nil, nil, 0.5, 0.5)
	if len(fused) != 0 {
		t.Errorf("expected empty result, got %d entries", len(fused))
	}
}

func TestApplyThreshold(t *testing.T) {
	in := []Scored{{ID: "A", Score: 0.9}, {ID: "B", Score: 0.5}, {ID: "C", Score: 0.1}}

	out := ApplyThreshold(in, 0.5)
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	if out[0].ID != "A" || out[1].ID != "B" {
		t.Errorf("unexpected order: %v", out)
	}

	// zero threshold keeps everything
	out = ApplyThreshold(in, 0)
	if len(out) != 3 {
		t.Errorf("expected 3 results with zero threshold, got %d", len(out))
	}
}

func TestNormalizeScore_Cosine(t *testing.T) {
	cases := []struct {
		raw  float32
		want float32
	}{
		{1, 1},
		{-1, 0},
		{0, 0.5},
		{0.8, 0.9},
		{1.2, 1}, // clamped: float drift can push cosine past 1
	}
	for _, c := range cases {
		got := NormalizeScore(MetricCosine, c.raw)
		if math.Abs(float64(got-c.want)) > 1e-6 {
			t.Errorf("cosine %v: expected %v, got %v", c.raw, c.want, got)
		}
	}
}

func TestNormalizeScore_L2(t *testing.T) {
	if got := NormalizeScore(MetricL2, 0); got != 1 {
		t.Errorf("L2 distance 0 should normalize to 1, got %v", got)
	}
	if got := NormalizeScore(MetricL2, 1); got != 0.5 {
		t.Errorf("L2 distance 1 should normalize to 0.5, got %v", got)
	}
	// monotonic: closer is better
	if NormalizeScore(MetricL2, 0.5) <= NormalizeScore(MetricL2, 2.0) {
		t.Error("L2 normalization must be decreasing in distance")
	}
}

func TestNormalizeScore_IP(t *testing.T) {
	if got := NormalizeScore(MetricIP, 0); got != 0.5 {
		t.Errorf("IP 0 should normalize to 0.5, got %v", got)
	}
	if got := NormalizeScore(MetricIP, 100); got <= 0.99 {
		t.Errorf("large IP should approach 1, got %v", got)
	}
	if got := NormalizeScore(MetricIP, -100); got >= 0.01 {
		t.Errorf("very negative IP should approach 0, got %v", got)
	}
}

func TestNormalizeScore_BM25(t *testing.T) {
	if got := NormalizeScore(MetricBM25, 0); got != 0 {
		t.Errorf("BM25 0 should normalize to 0, got %v", got)
	}
	if got := NormalizeScore(MetricBM25, 1); got != 0.5 {
		t.Errorf("BM25 1 should normalize to 0.5, got %v", got)
	}
	if NormalizeScore(MetricBM25, 10) <= NormalizeScore(MetricBM25, 5) {
		t.Error("BM25 normalization must be increasing")
	}
}

func TestParseMetric(t *testing.T) {
	for _, valid := range []string{"COSINE", "L2", "IP", "BM25"} {
		if _, err := ParseMetric(valid); err != nil {
			t.Errorf("expected %s to parse, got %v", valid, err)
		}
	}
	if _, err := ParseMetric("cosine"); err == nil {
		t.Error("expected lowercase metric name to be rejected")
	}
	if _, err := ParseMetric("HAMMING"); err == nil {
		t.Error("expected unknown metric to be rejected")
	}
}
