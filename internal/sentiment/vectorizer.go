package sentiment

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// same token rule as scikit-learn's default word analyzer: two or more word characters
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Vector is a sparse feature vector. Indices are strictly increasing.
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// NNZ returns the number of stored (non-zero) entries.
func (v Vector) NNZ() int { return len(v.Indices) }

// Vectorizer is a fitted TF-IDF transform. It is immutable after loading and safe for
// concurrent use.
type Vectorizer struct {
	vocabulary  map[string]int
	idf         []float64
	stopWords   map[string]struct{}
	minN, maxN  int
	lowercase   bool
	sublinearTF bool
	useIDF      bool
	norm        string
}

// NumFeatures is the length of every vector produced by Transform.
func (v *Vectorizer) NumFeatures() int { return len(v.vocabulary) }

// Transform maps text to its TF-IDF weights. Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(text string) Vector {
	counts := make(map[int]float64)
	for _, term := range v.terms(text) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	out := Vector{Dim: v.NumFeatures()}
	if len(counts) == 0 {
		return out
	}

	out.Indices = make([]int, 0, len(counts))
	for idx := range counts {
		out.Indices = append(out.Indices, idx)
	}
	sort.Ints(out.Indices)

	out.Values = make([]float64, len(out.Indices))
	for i, idx := range out.Indices {
		tf := counts[idx]
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		if v.useIDF {
			tf *= v.idf[idx]
		}
		out.Values[i] = tf
	}

	switch v.norm {
	case "l2":
		var sum float64
		for _, x := range out.Values {
			sum += x * x
		}
		scale(out.Values, math.Sqrt(sum))
	case "l1":
		var sum float64
		for _, x := range out.Values {
			sum += math.Abs(x)
		}
		scale(out.Values, sum)
	}
	return out
}

func scale(values []float64, norm float64) {
	if norm == 0 {
		return
	}
	for i := range values {
		values[i] /= norm
	}
}

func (v *Vectorizer) terms(text string) []string {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	var tokens []string
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		if _, stop := v.stopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	if v.maxN == 1 {
		return tokens
	}

	var terms []string
	minN := v.minN
	if minN == 1 {
		terms = append(terms, tokens...)
		minN = 2
	}
	for n := minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

func newVectorizer(a VectorizerArtifact) (*Vectorizer, error) {
	if len(a.Vocabulary) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrInvalidArtifact)
	}
	if a.UseIDF && len(a.IDF) != len(a.Vocabulary) {
		return nil, fmt.Errorf("%w: idf has %d weights for %d terms", ErrInvalidArtifact, len(a.IDF), len(a.Vocabulary))
	}

	seen := make([]bool, len(a.Vocabulary))
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= len(a.Vocabulary) {
			return nil, fmt.Errorf("%w: term %q has index %d out of range", ErrInvalidArtifact, term, idx)
		}
		if seen[idx] {
			return nil, fmt.Errorf("%w: index %d assigned twice", ErrInvalidArtifact, idx)
		}
		seen[idx] = true
	}
	for i, w := range a.IDF {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: idf[%d] is not finite", ErrInvalidArtifact, i)
		}
	}

	minN, maxN := 1, 1
	if len(a.NgramRange) != 0 {
		if len(a.NgramRange) != 2 || a.NgramRange[0] < 1 || a.NgramRange[1] < a.NgramRange[0] {
			return nil, fmt.Errorf("%w: bad ngram_range %v", ErrInvalidArtifact, a.NgramRange)
		}
		minN, maxN = a.NgramRange[0], a.NgramRange[1]
	}

	switch a.Norm {
	case "l1", "l2", "":
	default:
		return nil, fmt.Errorf("%w: unsupported norm %q", ErrInvalidArtifact, a.Norm)
	}

	stop := make(map[string]struct{}, len(a.StopWords))
	for _, w := range a.StopWords {
		stop[w] = struct{}{}
	}

	return &Vectorizer{
		vocabulary:  a.Vocabulary,
		idf:         a.IDF,
		stopWords:   stop,
		minN:        minN,
		maxN:        maxN,
		lowercase:   a.Lowercase,
		sublinearTF: a.SublinearTF,
		useIDF:      a.UseIDF,
		norm:        a.Norm,
	}, nil
}
