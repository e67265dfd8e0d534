package handler

import (
	"crypto/sha256"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/2tzz/Wheather-App-Fidenz/internal/adapters/transport/http/dto"
	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/auth/model"
)

func issueTokens(c *gin.Context, pair model.TokenPair, domain string) {
	// Access
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		"access_token",
		pair.AccessToken,
		int(pair.AccessTTL.Seconds()),
		"/",
		domain,
		true, // secure
		true, // httpOnly
	)

	// Refresh
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		"refresh_token",
		pair.RefreshToken,
		int(pair.RefreshTTL.Seconds()),
		"/",
		domain,
		true,
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"expiresIn": int(pair.AccessTTL.Seconds()),
		"userId":    pair.UserID.String(),
	})
}

func clearTokens(c *gin.Context, domain string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", "", -1, "/", domain, true, true)
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("refresh_token", "", -1, "/", domain, true, true)
}

func (h *Handler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Info("/register",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Email)))),
	)

	pair, err := h.auth.Register(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	issueTokens(c, pair, h.cfg.CookieDomain)
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Info("/login",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Email)))),
	)

	pair, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	issueTokens(c, pair, h.cfg.CookieDomain)
}

func (h *Handler) refresh(c *gin.Context) {
	var body dto.RefreshDTO
	// тело опционально – браузерные клиенты шлют токены в cookie
	_ = c.ShouldBindJSON(&body)
	if body.RefreshToken == "" {
		if v, err := c.Cookie("refresh_token"); err == nil {
			body.RefreshToken = v
		}
	}
	if body.AccessToken == "" {
		if v, err := c.Cookie("access_token"); err == nil {
			body.AccessToken = v
		}
	}

	pair, err := h.auth.Refresh(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	issueTokens(c, pair, h.cfg.CookieDomain)
}

func (h *Handler) logout(c *gin.Context) {
	var body dto.LogoutDTO
	_ = c.ShouldBindJSON(&body)
	if body.RefreshToken == "" {
		if v, err := c.Cookie("refresh_token"); err == nil {
			body.RefreshToken = v
		}
	}
	if body.AccessToken == "" {
		if v, err := c.Cookie("access_token"); err == nil {
			body.AccessToken = v
		}
	}
	h.logger.Info("/logout")

	// без refresh-токена отзывать нечего: просто чистим cookie
	if body.RefreshToken != "" {
		if err := h.auth.Logout(c.Request.Context(), body); err != nil {
			handleError(c, err)
			return
		}
	}
	clearTokens(c, h.cfg.CookieDomain)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
