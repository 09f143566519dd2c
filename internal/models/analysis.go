package models

import (
	"time"

	"MentalHealthSentiment_WebProject/internal/sentiment"
)

// MaxAnalysisTextLength is the number of characters of the raw input kept per record.
const MaxAnalysisTextLength = 500

// 사용자별 분석 기록 (최근 기록만 보관)
type Analysis struct {
	ID         int64               `json:"id"`
	UserID     int64               `json:"user_id"`
	Text       string              `json:"text"`
	Prediction string              `json:"prediction"`
	Sentiment  sentiment.Sentiment `json:"sentiment"`
	CreatedAt  time.Time           `json:"created_at"`
}

// TruncateText cuts s to at most MaxAnalysisTextLength characters.
func TruncateText(s string) string {
	n := 0
	for i := range s {
		if n == MaxAnalysisTextLength {
			return s[:i]
		}
		n++
	}
	return s
}
