package sentiment

// Sentiment is the coarse tag stored alongside each analysis.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Label is the human readable form of a classifier output.
type Label struct {
	Prediction string
	Sentiment  Sentiment
}

var labels = map[int]Label{
	1: {Prediction: "Positive Mental State 😊", Sentiment: SentimentPositive},
	0: {Prediction: "Neutral Mental State 😐", Sentiment: SentimentNeutral},
}

var negativeLabel = Label{Prediction: "Negative Mental State 😔", Sentiment: SentimentNegative}

// MapLabel maps a classifier label to its prediction string and tag.
// Anything other than 1 or 0 is negative.
func MapLabel(label int) Label {
	if l, ok := labels[label]; ok {
		return l
	}
	return negativeLabel
}

// Valid reports whether s is one of the known sentiment tags.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}
