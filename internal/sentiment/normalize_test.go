package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"url and punctuation", "I LOVE http://x.com life!!", "i love  life"},
		{"www link", "Check www.example.com now", "check  now"},
		{"https link", "see https://a.b/c?d=1 ok", "see  ok"},
		{"empty", "", ""},
		{"digits and accents", "Héllo Wörld 123", "hllo wrld "},
		{"tabs and newlines are not spaces", "a\tb\nc", "abc"},
		{"url revealed after stripping", "ht!tp://evil", ""},
		{"already clean", "i feel fine", "i feel fine"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"I LOVE http://x.com life!!",
		"w!ww.x and ht-tps stuff",
		"wwwhat is httpd",
		"Ünïcödé ☺ text, with; punctuation...",
		"   spaced    out   ",
		"MiXeD CaSe 42",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
		assert.Regexp(t, `^[a-z ]*$`, once)
	}
}

func TestMapLabel(t *testing.T) {
	assert.Equal(t, Label{"Positive Mental State 😊", SentimentPositive}, MapLabel(1))
	assert.Equal(t, Label{"Neutral Mental State 😐", SentimentNeutral}, MapLabel(0))

	for _, label := range []int{-1, 2, 3, 42, -100} {
		got := MapLabel(label)
		assert.Equal(t, SentimentNegative, got.Sentiment, "label %d", label)
		assert.Equal(t, "Negative Mental State 😔", got.Prediction)
	}
}

func TestSentimentValid(t *testing.T) {
	assert.True(t, SentimentPositive.Valid())
	assert.True(t, SentimentNeutral.Valid())
	assert.True(t, SentimentNegative.Valid())
	assert.False(t, Sentiment("meh").Valid())
}
