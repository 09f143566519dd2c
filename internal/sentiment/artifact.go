package sentiment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	VectorizerSchema = "tfidf-vectorizer"
	ClassifierSchema = "linear-classifier"
	ArtifactVersion  = 1

	VectorizerFile = "vectorizer.json"
	ClassifierFile = "model.json"
)

// Header identifies the artifact kind and format version.
type Header struct {
	Schema  string `json:"schema"`
	Version int    `json:"version"`
}

// VectorizerArtifact is the on-disk form of a fitted TF-IDF vectorizer, exported from
// the training script as vocabulary + idf weights.
type VectorizerArtifact struct {
	Header
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	StopWords   []string       `json:"stop_words,omitempty"`
	NgramRange  []int          `json:"ngram_range,omitempty"`
	Lowercase   bool           `json:"lowercase"`
	SublinearTF bool           `json:"sublinear_tf"`
	UseIDF      bool           `json:"use_idf"`
	Norm        string         `json:"norm"`
}

// ClassifierArtifact is the on-disk form of a fitted linear classifier.
type ClassifierArtifact struct {
	Header
	Classes   []int       `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
	NFeatures int         `json:"n_features"`
}

// DecodeVectorizer reads and validates a vectorizer artifact.
func DecodeVectorizer(r io.Reader) (*Vectorizer, error) {
	a := VectorizerArtifact{Lowercase: true, UseIDF: true, Norm: "l2"}
	if err := decodeStrict(r, &a); err != nil {
		return nil, err
	}
	if err := a.Header.check(VectorizerSchema); err != nil {
		return nil, err
	}
	if a.Norm == "none" {
		a.Norm = ""
	}
	return newVectorizer(a)
}

// DecodeClassifier reads and validates a classifier artifact.
func DecodeClassifier(r io.Reader) (*Classifier, error) {
	var a ClassifierArtifact
	if err := decodeStrict(r, &a); err != nil {
		return nil, err
	}
	if err := a.Header.check(ClassifierSchema); err != nil {
		return nil, err
	}
	return newClassifier(a)
}

// NewPipelineFromArtifacts validates both artifacts and checks they fit together.
func NewPipelineFromArtifacts(v VectorizerArtifact, c ClassifierArtifact) (*Pipeline, error) {
	if err := v.Header.check(VectorizerSchema); err != nil {
		return nil, err
	}
	if err := c.Header.check(ClassifierSchema); err != nil {
		return nil, err
	}
	vec, err := newVectorizer(v)
	if err != nil {
		return nil, err
	}
	clf, err := newClassifier(c)
	if err != nil {
		return nil, err
	}
	return NewPipeline(vec, clf)
}

// LoadPipeline loads vectorizer.json and model.json from dir. A missing file yields an
// error wrapping ErrModelUnavailable so callers can disable the feature instead of failing.
func LoadPipeline(dir string) (*Pipeline, error) {
	vec, err := loadFile(filepath.Join(dir, VectorizerFile), DecodeVectorizer)
	if err != nil {
		return nil, err
	}
	clf, err := loadFile(filepath.Join(dir, ClassifierFile), DecodeClassifier)
	if err != nil {
		return nil, err
	}
	return NewPipeline(vec, clf)
}

func loadFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return zero, fmt.Errorf("%w: %s not found", ErrModelUnavailable, path)
		}
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	out, err := decode(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func decodeStrict(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return nil
}

func (h Header) check(schema string) error {
	if h.Schema != schema {
		return fmt.Errorf("%w: schema %q, want %q", ErrInvalidArtifact, h.Schema, schema)
	}
	if h.Version != ArtifactVersion {
		return fmt.Errorf("%w: %s version %d not supported (want %d)", ErrInvalidArtifact, schema, h.Version, ArtifactVersion)
	}
	return nil
}
