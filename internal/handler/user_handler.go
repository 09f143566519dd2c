/**
* Name: 			user_handler.go
* Description: 		회원가입, 로그인, 프로필 조회 핸들러
* Workflow: 		Signup -> Login(JWT 발급) -> /api/* 보호 라우트 접근
 */
package handler

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"MentalHealthSentiment_WebProject/internal/auth"
	"MentalHealthSentiment_WebProject/internal/middleware"
	"MentalHealthSentiment_WebProject/internal/models"
	"MentalHealthSentiment_WebProject/internal/storage"
)

const maxUsernameLength = 150

// /signup 요청 바디
type SignupRequest struct {
	Username string `json:"username" example:"new_user"`
	Password string `json:"password" example:"password123"`
}

// /login 요청 바디
type LoginRequest struct {
	Username string `json:"username" example:"my_user"`
	Password string `json:"password" example:"password123"`
}

type LoginSuccessResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// 프로필 조회 응답
type ProfileResponse struct {
	Message string      `json:"message" example:"this is a protected profile"`
	User    models.User `json:"user"`
}

// Signup godoc
// @Summary      회원가입 (Signup)
// @Description  새로운 사용자 계정을 생성합니다. SIGNUP_INVITE_CODE가 설정된 경우 X-Invite-Code 헤더가 필요합니다.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body handler.SignupRequest true "회원가입 요청 정보"
// @Param        X-Invite-Code header string false "초대 코드"
// @Success      200 {object} handler.SuccessResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      403 {object} handler.ErrorResponse "초대 코드 불일치"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var credentials SignupRequest
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
		return
	}

	// " "으로 입력되는 케이스 방지
	username := strings.TrimSpace(credentials.Username)
	if username == "" || strings.TrimSpace(credentials.Password) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Username and Password cannot be empty"})
		return
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Username is too long"})
		return
	}

	hashed, err := auth.HashPassword(credentials.Password)
	if err != nil {
		h.Logger.Error("Signup(): failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to hash password"})
		return
	}

	if _, err := h.Users.CreateUser(c.Request.Context(), username, hashed); err != nil {
		if errors.Is(err, storage.ErrUsernameExists) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Username already exists"})
			return
		}
		h.Logger.Error("Signup(): failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create user (database error)"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "User created successfully"})
}

// Login godoc
// @Summary      로그인 (Login)
// @Description  사용자명과 비밀번호로 로그인하고 JWT 토큰을 발급받습니다.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body handler.LoginRequest true "로그인 요청 정보"
// @Success      200 {object} handler.LoginSuccessResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청"
// @Failure      401 {object} handler.ErrorResponse "인증 실패 (자격 증명 오류)"
// @Failure      429 {object} handler.ErrorResponse "요청 과다"
// @Failure      500 {object} handler.ErrorResponse "서버 내부 오류"
// @Router       /login [post]
func (h *Handler) Login(c *gin.Context) {
	var credentials LoginRequest
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
		return
	}

	if credentials.Username == "" || credentials.Password == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		return
	}

	user, err := h.Users.GetUserByUsername(c.Request.Context(), strings.TrimSpace(credentials.Username))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
			return
		}
		h.Logger.Error("Login(): GetUserByUsername failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Database error"})
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, credentials.Password); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		return
	}

	tokenString, err := h.Tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		h.Logger.Error("Login(): failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginSuccessResponse{Token: tokenString})
}

// Profile godoc
// @Summary      프로필 조회 (Profile)
// @Description  인증된 사용자의 프로필 정보를 조회합니다. (JWT 필요)
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.ProfileResponse
// @Failure      401 {object} handler.ErrorResponse "인증 토큰 누락 또는 만료"
// @Failure      404 {object} handler.ErrorResponse "삭제된 사용자"
// @Router       /api/profile [get]
func (h *Handler) Profile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ProfileResponse{Message: "this is a protected profile", User: user})
}

// currentUser loads the user behind the JWT. It writes the error response itself.
func (h *Handler) currentUser(c *gin.Context) (models.User, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
		return models.User{}, false
	}
	user, err := h.Users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return models.User{}, false
		}
		h.Logger.Error("currentUser(): GetUserByID failed", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Database error"})
		return models.User{}, false
	}
	return user, true
}
