// Package sentiment turns free text into a mental state label: normalize, vectorize,
// classify, map the label.
package sentiment

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrModelUnavailable means the artifacts could not be found; the feature is disabled.
	ErrModelUnavailable = errors.New("sentiment model unavailable")
	// ErrInvalidArtifact means an artifact was found but failed schema or shape checks.
	ErrInvalidArtifact = errors.New("invalid model artifact")
	// ErrEmptyText is returned when there is nothing to classify.
	ErrEmptyText = errors.New("text is empty")
	// ErrInference wraps failures while scoring a vector.
	ErrInference = errors.New("inference failed")
)

// Result is the outcome of classifying one text.
type Result struct {
	Cleaned    string    `json:"-"`
	Label      int       `json:"label"`
	Prediction string    `json:"prediction"`
	Sentiment  Sentiment `json:"sentiment"`
}

// Transformer maps cleaned text to a feature vector. *Vectorizer implements it.
type Transformer interface {
	Transform(text string) Vector
	NumFeatures() int
}

// Predictor maps a feature vector to a label. *Classifier implements it.
type Predictor interface {
	Predict(x Vector) (int, error)
	NumFeatures() int
}

// Pipeline holds a loaded vectorizer and classifier. It is read-only after construction
// and shared by all requests.
type Pipeline struct {
	vectorizer Transformer
	classifier Predictor
}

// NewPipeline pairs a vectorizer and classifier, checking their dimensions agree.
func NewPipeline(v Transformer, c Predictor) (*Pipeline, error) {
	if v == nil || c == nil {
		return nil, ErrModelUnavailable
	}
	if v.NumFeatures() != c.NumFeatures() {
		return nil, fmt.Errorf("%w: vectorizer has %d features, classifier expects %d",
			ErrInvalidArtifact, v.NumFeatures(), c.NumFeatures())
	}
	return &Pipeline{vectorizer: v, classifier: c}, nil
}

// NumFeatures is the shared feature dimension of the loaded artifacts.
func (p *Pipeline) NumFeatures() int { return p.vectorizer.NumFeatures() }

// Predict vectorizes already normalized text and returns the raw label.
func (p *Pipeline) Predict(cleaned string) (int, error) {
	if strings.TrimSpace(cleaned) == "" {
		return 0, ErrEmptyText
	}
	return p.classifier.Predict(p.vectorizer.Transform(cleaned))
}

// Classify runs the whole pipeline on raw user text.
func (p *Pipeline) Classify(raw string) (Result, error) {
	if p == nil {
		return Result{}, ErrModelUnavailable
	}
	if strings.TrimSpace(raw) == "" {
		return Result{}, ErrEmptyText
	}

	cleaned := Normalize(raw)
	label, err := p.Predict(cleaned)
	if err != nil {
		return Result{}, err
	}

	l := MapLabel(label)
	return Result{
		Cleaned:    cleaned,
		Label:      label,
		Prediction: l.Prediction,
		Sentiment:  l.Sentiment,
	}, nil
}
