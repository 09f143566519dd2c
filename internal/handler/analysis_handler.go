/**
* Name: 			analysis_handler.go
* Description: 		감정 분석 및 분석 기록 조회 핸들러
* Workflow: 		텍스트 입력 -> 정규화/벡터화/분류 -> (로그인 시) 기록 저장 -> 최근 기록 반환
 */
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"MentalHealthSentiment_WebProject/internal/middleware"
	"MentalHealthSentiment_WebProject/internal/models"
	"MentalHealthSentiment_WebProject/internal/storage"
)

// 익명 분석 응답
type AnalyzeResponse struct {
	Result   *ResultView `json:"result,omitempty"`
	Messages []Message   `json:"messages"`
}

// 대시보드 응답: 방금 분석한 결과 + 최근 기록
type DashboardResponse struct {
	Prediction     *ResultView       `json:"prediction,omitempty"`
	History        []models.Analysis `json:"history"`
	ModelAvailable bool              `json:"model_available" example:"true"`
	Messages       []Message         `json:"messages"`
}

// 분석 기록 목록 응답 (Wrapper)
type HistoryResponse struct {
	History []models.Analysis `json:"history"`
	Limit   int               `json:"limit" example:"20"`
}

// Analyze godoc
// @Summary      익명 감정 분석
// @Description  로그인 없이 텍스트를 분석합니다. 결과는 저장되지 않습니다.
// @Tags         Analysis
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request body handler.AnalyzeRequest true "분석할 텍스트"
// @Success      200 {object} handler.AnalyzeResponse
// @Failure      400 {object} handler.AnalyzeResponse "빈 텍스트"
// @Failure      500 {object} handler.AnalyzeResponse "분석 실패"
// @Failure      503 {object} handler.AnalyzeResponse "모델 미로딩"
// @Router       /analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	text, ok := bindText(c)
	if !ok {
		c.JSON(http.StatusBadRequest, AnalyzeResponse{Messages: []Message{{Level: LevelError, Text: "Invalid request"}}})
		return
	}

	out, err := h.Analysis.Analyze(c.Request.Context(), nil, text)
	if err != nil {
		status, msg := analysisError(err)
		c.JSON(status, AnalyzeResponse{Messages: []Message{msg}})
		return
	}
	c.JSON(http.StatusOK, AnalyzeResponse{Result: newResultView(out.Result), Messages: []Message{}})
}

// Dashboard godoc
// @Summary      대시보드 조회
// @Description  최근 분석 기록(최대 20개)과 모델 로딩 여부를 반환합니다.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.DashboardResponse
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      500 {object} handler.ErrorResponse "DB 조회 실패 등 서버 오류"
// @Router       /api/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
		return
	}
	h.renderDashboard(c, http.StatusOK, userID, DashboardResponse{Messages: []Message{}})
}

// DashboardAnalyze godoc
// @Summary      감정 분석 후 기록 저장
// @Description  텍스트를 분석하고 결과를 사용자 기록에 저장한 뒤, 최근 기록과 함께 반환합니다.
// @Description  기록 저장에 실패해도 분석 결과는 반환되며 messages에 warning이 포함됩니다.
// @Tags         API (Protected)
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.AnalyzeRequest true "분석할 텍스트"
// @Success      200 {object} handler.DashboardResponse
// @Failure      400 {object} handler.DashboardResponse "빈 텍스트"
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      500 {object} handler.DashboardResponse "분석 실패"
// @Failure      503 {object} handler.DashboardResponse "모델 미로딩"
// @Router       /api/dashboard [post]
func (h *Handler) DashboardAnalyze(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
		return
	}

	text, ok := bindText(c)
	if !ok {
		h.renderDashboard(c, http.StatusBadRequest, userID, DashboardResponse{
			Messages: []Message{{Level: LevelError, Text: "Invalid request"}},
		})
		return
	}

	out, err := h.Analysis.Analyze(c.Request.Context(), &userID, text)
	if err != nil {
		status, msg := analysisError(err)
		h.renderDashboard(c, status, userID, DashboardResponse{Messages: []Message{msg}})
		return
	}

	resp := DashboardResponse{Prediction: newResultView(out.Result), Messages: []Message{}}
	if out.Warning != "" {
		resp.Messages = append(resp.Messages, Message{Level: LevelWarning, Text: out.Warning})
	}
	h.renderDashboard(c, http.StatusOK, userID, resp)
}

func (h *Handler) renderDashboard(c *gin.Context, status int, userID int64, resp DashboardResponse) {
	history, err := h.Analysis.History(c.Request.Context(), userID, storage.MaxHistoryLimit)
	if err != nil {
		h.Logger.Error("renderDashboard(): failed to load history", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch history", Messages: resp.Messages})
		return
	}
	resp.History = history
	resp.ModelAvailable = h.Analysis.ModelAvailable()
	c.JSON(status, resp)
}

// GetHistory godoc
// @Summary      사용자 분석 기록 조회
// @Description  사용자의 과거 분석 기록을 최신순으로 반환합니다. limit은 1~20 (기본 20)입니다.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "조회 개수 (1-20)"
// @Success      200 {object} handler.HistoryResponse "history: [기록 배열]"
// @Failure      400 {object} handler.ErrorResponse "잘못된 limit"
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      500 {object} handler.ErrorResponse "DB 조회 실패 등 서버 오류"
// @Router       /api/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
		return
	}

	limit := storage.MaxHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer"})
			return
		}
		limit = storage.ClampHistoryLimit(n)
	}

	records, err := h.Analysis.History(c.Request.Context(), userID, limit)
	if err != nil {
		h.Logger.Error("GetHistory(): failed to fetch records", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch records"})
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{History: records, Limit: limit})
}
