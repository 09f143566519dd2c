package sentiment

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorizerHeader() Header { return Header{Schema: VectorizerSchema, Version: ArtifactVersion} }

func mustVectorizer(t *testing.T, a VectorizerArtifact) *Vectorizer {
	t.Helper()
	a.Header = vectorizerHeader()
	v, err := newVectorizer(a)
	require.NoError(t, err)
	return v
}

func TestVectorizer_Transform(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)
	inv := 1 / math.Sqrt2

	tests := []struct {
		name     string
		artifact VectorizerArtifact
		text     string
		want     Vector
	}{
		{
			name: "l2 normalized tfidf",
			artifact: VectorizerArtifact{
				Vocabulary: map[string]int{"love": 0, "happy": 1, "life": 2},
				IDF:        []float64{1, 1, 1},
				Lowercase:  true, UseIDF: true, Norm: "l2",
			},
			text: "i love  life",
			want: Vector{Dim: 3, Indices: []int{0, 2}, Values: []float64{inv, inv}},
		},
		{
			name: "stop words dropped",
			artifact: VectorizerArtifact{
				Vocabulary: map[string]int{"the": 0, "sun": 1},
				IDF:        []float64{1, 1},
				StopWords:  []string{"the"},
				Lowercase:  true, UseIDF: true, Norm: "l2",
			},
			text: "The sun",
			want: Vector{Dim: 2, Indices: []int{1}, Values: []float64{1}},
		},
		{
			name: "bigrams",
			artifact: VectorizerArtifact{
				Vocabulary: map[string]int{"good": 0, "day": 1, "good day": 2},
				NgramRange: []int{1, 2},
				Lowercase:  true,
			},
			text: "good day",
			want: Vector{Dim: 3, Indices: []int{0, 1, 2}, Values: []float64{1, 1, 1}},
		},
		{
			name: "bigrams only",
			artifact: VectorizerArtifact{
				Vocabulary: map[string]int{"good": 0, "good day": 1},
				NgramRange: []int{2, 2},
				Lowercase:  true,
			},
			text: "good day",
			want: Vector{Dim: 2, Indices: []int{1}, Values: []float64{1}},
		},
		{
			name: "sublinear tf with idf",
			artifact: VectorizerArtifact{
				Vocabulary:  map[string]int{"sad": 0},
				IDF:         []float64{2},
				SublinearTF: true, UseIDF: true,
			},
			text: "sad sad sad",
			want: Vector{Dim: 1, Indices: []int{0}, Values: []float64{(1 + math.Log(3)) * 2}},
		},
		{
			name: "l1 norm",
			artifact: VectorizerArtifact{
				Vocabulary: map[string]int{"aa": 0, "bb": 1},
				IDF:        []float64{1, 3},
				UseIDF:     true, Norm: "l1",
			},
			text: "aa bb",
			want: Vector{Dim: 2, Indices: []int{0, 1}, Values: []float64{0.25, 0.75}},
		},
		{
			name: "single characters are not tokens",
			artifact: VectorizerArtifact{
				Vocabulary: map[string]int{"i": 0, "am": 1},
				Norm:       "l2",
			},
			text: "i am",
			want: Vector{Dim: 2, Indices: []int{1}, Values: []float64{1}},
		},
		{
			name: "nothing in vocabulary",
			artifact: VectorizerArtifact{
				Vocabulary: map[string]int{"love": 0},
				IDF:        []float64{1},
				UseIDF:     true, Norm: "l2",
			},
			text: "zz qq",
			want: Vector{Dim: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustVectorizer(t, tt.artifact)
			got := v.Transform(tt.text)
			if diff := cmp.Diff(tt.want, got, approx, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Transform(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestVectorizer_Lowercase(t *testing.T) {
	on := mustVectorizer(t, VectorizerArtifact{Vocabulary: map[string]int{"love": 0}, Lowercase: true})
	off := mustVectorizer(t, VectorizerArtifact{Vocabulary: map[string]int{"love": 0}})

	assert.Equal(t, 1, on.Transform("LOVE").NNZ())
	assert.Equal(t, 0, off.Transform("LOVE").NNZ())
}

func TestNewVectorizer_Invalid(t *testing.T) {
	tests := map[string]VectorizerArtifact{
		"empty vocabulary":   {UseIDF: true},
		"idf length":         {Vocabulary: map[string]int{"a": 0, "b": 1}, IDF: []float64{1}, UseIDF: true},
		"index out of range": {Vocabulary: map[string]int{"a": 0, "b": 5}},
		"duplicate index":    {Vocabulary: map[string]int{"a": 0, "b": 0}},
		"nan idf":            {Vocabulary: map[string]int{"a": 0}, IDF: []float64{math.NaN()}, UseIDF: true},
		"bad ngram range":    {Vocabulary: map[string]int{"a": 0}, NgramRange: []int{2, 1}},
		"unknown norm":       {Vocabulary: map[string]int{"a": 0}, Norm: "max"},
	}
	for name, a := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := newVectorizer(a)
			assert.ErrorIs(t, err, ErrInvalidArtifact)
		})
	}
}
