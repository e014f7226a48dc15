package vector

import (
	"math"
	"testing"
)

func TestEmbedDimensionAndNorm(t *testing.T) {
	e := NewEmbedder()
	vec := e.Embed("Alex prefers concise answers about Go concurrency.")

	if len(vec) != Dimension {
		t.Fatalf("dimension = %d, want %d", len(vec), Dimension)
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-5 {
		t.Errorf("vector not unit length: %v", math.Sqrt(norm))
	}
}

func TestEmbedDeterministic(t *testing.T) {
	e := NewEmbedder()
	a := e.Embed("the same text")
	b := e.Embed("the same text")
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("embedding is not deterministic")
		}
	}
}

func TestEmbedEmptyText(t *testing.T) {
	e := NewEmbedder()
	for _, text := range []string{"", "   ", "!!! ??? ..."} {
		vec := e.Embed(text)
		if len(vec) != Dimension {
			t.Fatalf("dimension = %d, want %d", len(vec), Dimension)
		}
		for _, v := range vec {
			if v != 0 {
				t.Fatalf("expected zero vector for %q", text)
			}
		}
	}
}

func TestEmbedSimilarityOrdering(t *testing.T) {
	e := NewEmbedder()
	query := e.Embed("deploy pipeline rollout")
	related := e.Embed("the deploy pipeline uses blue-green rollout")
	unrelated := e.Embed("my cat sleeps all afternoon")

	if cosine(query, related) <= cosine(query, unrelated) {
		t.Error("overlapping text should score higher than disjoint text")
	}
}

func cosine(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

func TestParseEndpoint(t *testing.T) {
	cases := []struct {
		in     string
		host   string
		port   int
		useTLS bool
	}{
		{"http://localhost:6334", "localhost", 6334, false},
		{"https://xyz.eu-west.cloud.qdrant.io:6334", "xyz.eu-west.cloud.qdrant.io", 6334, true},
		{"https://xyz.cloud.qdrant.io", "xyz.cloud.qdrant.io", 6334, true},
		{"localhost:6334", "localhost", 6334, false},
	}
	for _, tc := range cases {
		host, port, useTLS, err := parseEndpoint(tc.in)
		if err != nil {
			t.Errorf("parseEndpoint(%q) failed: %v", tc.in, err)
			continue
		}
		if host != tc.host || port != tc.port || useTLS != tc.useTLS {
			t.Errorf("parseEndpoint(%q) = (%s, %d, %v), want (%s, %d, %v)",
				tc.in, host, port, useTLS, tc.host, tc.port, tc.useTLS)
		}
	}
}

func TestUnconfigured(t *testing.T) {
	for _, v := range []string{"", "<your-qdrant-url>"} {
		if !unconfigured(v) {
			t.Errorf("%q should read as unconfigured", v)
		}
	}
	if unconfigured("https://real.example:6334") {
		t.Error("real URL flagged as unconfigured")
	}
}
