package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/modaworks/vesti/internal/config"
	"github.com/modaworks/vesti/internal/middleware"
)

// AuthHandler 설정 기반 단일 계정 로그인.
// 브랜드 내부 도구라 사용자 테이블 없이 운영 계정 하나로 돈다.
type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.Auth.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.Auth.Password)) == 1
	if !userOK || !passOK {
		c.JSON(http.StatusUnauthorized, Response{Code: 40101, Message: "아이디 또는 비밀번호가 올바르지 않습니다"})
		return
	}

	expire := h.cfg.JWT.AccessTokenExpire
	if expire <= 0 {
		expire = 24 * time.Hour
	}
	now := time.Now()
	expiresAt := now.Add(expire)

	claims := middleware.JWTClaims{
		UserID: req.Username,
		Name:   req.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    h.cfg.JWT.Issuer,
			Subject:   req.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWT.Secret))
	if err != nil {
		InternalError(c, "토큰 발급 실패: "+err.Error())
		return
	}

	Success(c, LoginResponse{AccessToken: signed, ExpiresAt: expiresAt})
}

// Me GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	Success(c, gin.H{
		"user_id": GetUserID(c),
		"name":    c.GetString("user_name"),
	})
}
