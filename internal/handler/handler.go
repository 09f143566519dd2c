/**
* Name: 			handler.go
* Description: 		Gin HTTP 핸들러 공통 의존성 및 응답 타입
* Workflow: 		main에서 Handler 생성 -> NewRouter로 라우트 등록
 */
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"MentalHealthSentiment_WebProject/internal/analysis"
	"MentalHealthSentiment_WebProject/internal/auth"
	"MentalHealthSentiment_WebProject/internal/models"
	"MentalHealthSentiment_WebProject/internal/sentiment"
)

// UserStore is the account side of the store. *storage.Store implements it.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
}

type Handler struct {
	Users    UserStore
	Analysis *analysis.Service
	Tokens   *auth.TokenManager
	Logger   *zap.Logger
}

func New(users UserStore, svc *analysis.Service, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Users: users, Analysis: svc, Tokens: tokens, Logger: logger}
}

// Message levels
const (
	LevelError   = "error"
	LevelWarning = "warning"
	LevelInfo    = "info"
)

// 사용자에게 보여줄 알림 메시지 (flash)
type Message struct {
	Level string `json:"level" example:"error"`
	Text  string `json:"text" example:"ML model not loaded. Please check if model.json and vectorizer.json exist."`
}

type SuccessResponse struct {
	Message string `json:"message" example:"User created successfully"`
}

type ErrorResponse struct {
	Error    string    `json:"error" example:"에러 원인 및 설명"`
	Messages []Message `json:"messages,omitempty"`
}

// 분석 결과
type ResultView struct {
	Label      int                 `json:"label" example:"1"`
	Prediction string              `json:"prediction" example:"Positive Mental State 😊"`
	Sentiment  sentiment.Sentiment `json:"sentiment" example:"positive"`
}

func newResultView(r sentiment.Result) *ResultView {
	return &ResultView{Label: r.Label, Prediction: r.Prediction, Sentiment: r.Sentiment}
}

// /analyze, /api/dashboard 요청 바디 (JSON 또는 form)
type AnalyzeRequest struct {
	Text string `json:"text" form:"text" example:"I feel great about my life today"`
}

// analysisError maps an analysis failure to a status code and a user-facing message.
func analysisError(err error) (int, Message) {
	switch {
	case errors.Is(err, analysis.ErrEmptyText):
		return http.StatusBadRequest, Message{Level: LevelError, Text: analysis.MessageEmptyText}
	case errors.Is(err, analysis.ErrModelUnavailable):
		return http.StatusServiceUnavailable, Message{Level: LevelError, Text: analysis.MessageModelUnavailable}
	default:
		return http.StatusInternalServerError, Message{Level: LevelError, Text: analysis.MessageInferenceFailed}
	}
}

// bindText reads the text field from either a JSON body or a form post.
func bindText(c *gin.Context) (string, bool) {
	var req AnalyzeRequest
	if err := c.ShouldBind(&req); err != nil {
		return "", false
	}
	return req.Text, true
}
