package vector

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Dimension is fixed at collection creation. Changing it requires a new
// collection or a re-embedding migration.
const Dimension = 384

// Embedder produces deterministic dense vectors locally, with no model
// download or network call. It hashes word unigrams and bigrams into a
// fixed number of signed buckets and L2-normalizes the result, so cosine
// similarity reflects token overlap.
type Embedder struct{}

// NewEmbedder returns the local embedder.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// Embed maps text to a unit-length Dimension-wide vector. The zero vector
// is returned for text with no tokens (cosine against it is 0 everywhere).
func (e *Embedder) Embed(text string) []float32 {
	vec := make([]float32, Dimension)
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return vec
	}

	for i, tok := range tokens {
		addFeature(vec, tok)
		if i+1 < len(tokens) {
			addFeature(vec, tok+" "+tokens[i+1])
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return vec
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

func addFeature(vec []float32, feature string) {
	h := fnv.New64a()
	h.Write([]byte(feature))
	sum := h.Sum64()

	bucket := sum % Dimension
	// One hash bit decides the sign so collisions cancel rather than pile up.
	if sum&(1<<63) != 0 {
		vec[bucket] -= 1
	} else {
		vec[bucket] += 1
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
