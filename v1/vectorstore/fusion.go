package vectorstore

import (
	"math"
	"sort"
)

// MetricType identifies the similarity metric a raw score came from.
type MetricType string

const (
	MetricCosine MetricType = "COSINE"
	MetricL2     MetricType = "L2"
	MetricIP     MetricType = "IP"
	MetricBM25   MetricType = "BM25"
)

// ParseMetric parses a metric name. Unknown names are an error so that a
// mistyped config value cannot silently fall back to a wrong normalization.
func ParseMetric(s string) (MetricType, error) {
	switch MetricType(s) {
	case MetricCosine, MetricL2, MetricIP, MetricBM25:
		return MetricType(s), nil
	}
	return "", Errorf(KindInvalidRequest, "metric",
		"unknown metric type %q (valid: COSINE, L2, IP, BM25)", s)
}

// NormalizeScore maps a raw backend score onto [0,1], higher is better.
// Each metric gets its own monotonic mapping:
//
//	COSINE  (1+s)/2, clamped      similarity in [-1,1]
//	L2      1/(1+d)               distance in [0,inf), lower is better
//	IP      1/(1+exp(-s))         unbounded inner product
//	BM25    s/(1+s)               relevance in [0,inf)
//
// Normalized scores from different metrics can be weighted against each other
// in hybrid fusion.
func NormalizeScore(metric MetricType, raw float32) float32 {
	switch metric {
	case MetricCosine:
		n := (1 + raw) / 2
		if n < 0 {
			return 0
		}
		if n > 1 {
			return 1
		}
		return n
	case MetricL2:
		if raw < 0 {
			raw = 0
		}
		return 1 / (1 + raw)
	case MetricIP:
		return float32(1 / (1 + math.Exp(-float64(raw))))
	case MetricBM25:
		if raw < 0 {
			raw = 0
		}
		return raw / (1 + raw)
	}
	return raw
}

// Scored is one (document id, normalized score) pair from a single retrieval
// leg.
type Scored struct {
	ID    string
	Score float32
}

// FuseScored combines vector-leg and keyword-leg results into one ranking.
// Scores must already be normalized. A document's combined score is
// vectorWeight*v + keywordWeight*k, with a missing leg contributing 0.
// Results are ordered by combined score descending; exact ties keep the order
// of first appearance in the vector list, then the keyword list.
func FuseScored(vector, keyword []Scored, vectorWeight, keywordWeight float32) []Scored {
	type fused struct {
		id    string
		score float32
	}

	order := make(map[string]*fused, len(vector)+len(keyword))
	combined := make([]*fused, 0, len(vector)+len(keyword))

	add := func(id string, contribution float32) {
		if f, ok := order[id]; ok {
			f.score += contribution
			return
		}
		f := &fused{id: id, score: contribution}
		order[id] = f
		combined = append(combined, f)
	}

	for _, s := range vector {
		add(s.ID, vectorWeight*s.Score)
	}
	for _, s := range keyword {
		add(s.ID, keywordWeight*s.Score)
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].score > combined[j].score
	})

	out := make([]Scored, len(combined))
	for i, f := range combined {
		out[i] = Scored{ID: f.id, Score: f.score}
	}
	return out
}

// ApplyThreshold drops scored entries below the threshold, preserving order.
// A zero threshold keeps everything.
func ApplyThreshold(results []Scored, threshold float32) []Scored {
	if threshold <= 0 {
		return results
	}
	out := results[:0:0]
	for _, r := range results {
		if r.Score >= threshold {
			out = append(out, r)
		}
	}
	return out
}
