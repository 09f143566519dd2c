package sentiment

import (
	"fmt"
	"math"
)

// Classifier is a fitted linear model. It is immutable after loading and safe for
// concurrent use.
type Classifier struct {
	classes   []int
	coef      [][]float64
	intercept []float64
	nFeatures int
}

// NumFeatures is the input dimension the model was trained on.
func (c *Classifier) NumFeatures() int { return c.nFeatures }

// Classes returns a copy of the labels the model can emit.
func (c *Classifier) Classes() []int {
	return append([]int(nil), c.classes...)
}

// Predict returns the label for x.
func (c *Classifier) Predict(x Vector) (int, error) {
	if x.Dim != c.nFeatures {
		return 0, fmt.Errorf("%w: vector has %d features, model expects %d", ErrInference, x.Dim, c.nFeatures)
	}

	scores := make([]float64, len(c.coef))
	for row, w := range c.coef {
		s := c.intercept[row]
		for i, idx := range x.Indices {
			s += w[idx] * x.Values[i]
		}
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return 0, fmt.Errorf("%w: non-finite decision score", ErrInference)
		}
		scores[row] = s
	}

	// binary models keep one row; positive score selects the second class
	if len(scores) == 1 {
		if scores[0] > 0 {
			return c.classes[1], nil
		}
		return c.classes[0], nil
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return c.classes[best], nil
}

func newClassifier(a ClassifierArtifact) (*Classifier, error) {
	if len(a.Classes) < 2 {
		return nil, fmt.Errorf("%w: need at least two classes, got %d", ErrInvalidArtifact, len(a.Classes))
	}
	seen := make(map[int]bool, len(a.Classes))
	for _, cl := range a.Classes {
		if seen[cl] {
			return nil, fmt.Errorf("%w: duplicate class %d", ErrInvalidArtifact, cl)
		}
		seen[cl] = true
	}

	rows := len(a.Classes)
	if rows == 2 {
		rows = 1
	}
	if len(a.Coef) != rows {
		return nil, fmt.Errorf("%w: %d classes need %d coefficient rows, got %d", ErrInvalidArtifact, len(a.Classes), rows, len(a.Coef))
	}
	if len(a.Intercept) != rows {
		return nil, fmt.Errorf("%w: %d intercepts for %d coefficient rows", ErrInvalidArtifact, len(a.Intercept), rows)
	}
	if a.NFeatures <= 0 {
		return nil, fmt.Errorf("%w: n_features must be positive", ErrInvalidArtifact)
	}
	for r, w := range a.Coef {
		if len(w) != a.NFeatures {
			return nil, fmt.Errorf("%w: coef row %d has %d weights, n_features is %d", ErrInvalidArtifact, r, len(w), a.NFeatures)
		}
	}

	return &Classifier{
		classes:   a.Classes,
		coef:      a.Coef,
		intercept: a.Intercept,
		nFeatures: a.NFeatures,
	}, nil
}
