package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meetu-app/meetu-server/internal/application/constant"
	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/appctx"
	"github.com/meetu-app/meetu-server/internal/infra/ports/http/dto"
	"github.com/meetu-app/meetu-server/internal/usecase"
)

type AuthHandler struct {
	userUsecase usecase.UserUsecase
}

func NewAuthHandler(userUsecase usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{
		userUsecase: userUsecase,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email and password are required"})
	}

	user, err := h.userUsecase.CreateUser(c.Request().Context(), req.Email, req.Password, models.AuthProvider(req.Provider))
	if err != nil {
		slog.Error("create user failed", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create user"})
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	user, err := h.userUsecase.ValidateCredentials(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		slog.Error("validate credentials failed", slog.String(constant.UserName, req.Email), slog.Any(constant.Error, err))
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}

	token, err := h.userUsecase.GenerateJWT(user)
	if err != nil {
		slog.Error("generate JWT failed", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create token"})
	}

	c.SetCookie(&http.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(72 * time.Hour),
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.NoContent(http.StatusOK)
}

func (h *AuthHandler) GetMe(c echo.Context) error {
	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user ID in context"})
	}

	user, err := h.userUsecase.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	}

	user.Password = ""

	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) SubmitStudentCard(c echo.Context) error {
	var req dto.SubmitStudentCardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if req.StudentCardURL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "student_card_url is required"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	if err := h.userUsecase.SubmitStudentCard(c.Request().Context(), userID, req.StudentCardURL); err != nil {
		slog.Error("submit student card", slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.NoContent(http.StatusAccepted)
}
