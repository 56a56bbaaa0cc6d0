package handler

import (
	"errors"
	"net/http"

	"shop/internal/app/dto"
	"shop/internal/app/middleware"
	"shop/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *Handler) GetSignup(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "add-user.html", gin.H{})
}

// Signup регистрирует пользователя с ролью ROLE_USER
func (h *Handler) Signup(ctx *gin.Context) {
	var req dto.CredentialsRequest
	if err := ctx.ShouldBind(&req); err != nil {
		h.render(ctx, http.StatusBadRequest, "add-user.html", gin.H{
			"error": "Укажите логин и пароль",
			"login": req.Login,
		})
		return
	}

	login, err := h.Accounts.Register(ctx.Request.Context(), req.Login, req.Password)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			logrus.WithError(err).Error("signup failed")
		}
		h.redirectToError(ctx, userMessage(status, err))
		return
	}

	logrus.WithField("login", login).Info("user registered")
	ctx.Redirect(http.StatusFound, "/login")
}

func (h *Handler) GetLogin(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "login.html", gin.H{})
}

// Login проверяет пароль и выставляет cookie сессии
func (h *Handler) Login(ctx *gin.Context) {
	var req dto.CredentialsRequest
	if err := ctx.ShouldBind(&req); err != nil {
		h.render(ctx, http.StatusBadRequest, "login.html", gin.H{"error": "Укажите логин и пароль"})
		return
	}

	principal, err := h.Accounts.Authenticate(ctx.Request.Context(), req.Login, req.Password)
	if err != nil {
		if !errors.Is(err, service.ErrUnauthorized) {
			h.errorHandler(ctx, statusFor(err), err)
			return
		}
		h.render(ctx, http.StatusUnauthorized, "login.html", gin.H{
			"error": "Неверный логин или пароль",
			"login": req.Login,
		})
		return
	}

	token, ttl, err := h.Auth.IssueToken(principal)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.CookieName, token, int(ttl.Seconds()), "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/main/items")
}

// Logout отзывает токен и удаляет cookie
func (h *Handler) Logout(ctx *gin.Context) {
	if err := h.Auth.RevokeToken(ctx.Request.Context(), middleware.CurrentToken(ctx)); err != nil {
		logrus.WithError(err).Error("failed to revoke session token")
	}

	ctx.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/login")
}

func (h *Handler) GetError(ctx *gin.Context) {
	var query dto.ErrorQuery
	_ = ctx.ShouldBindQuery(&query)

	message := query.Message
	if message == "" {
		message = "Что-то пошло не так"
	}
	h.render(ctx, http.StatusOK, "error.html", gin.H{"message": message})
}

// RegisterUser регистрация нового пользователя
// @Summary Регистрация пользователя
// @Description Создание нового пользователя с ролью ROLE_USER
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.CredentialsRequest true "Логин и пароль"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/auth/register [post]
func (h *APIHandler) RegisterUser(ctx *gin.Context) {
	var req dto.CredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err)
		return
	}

	login, err := h.Accounts.Register(ctx.Request.Context(), req.Login, req.Password)
	if err != nil {
		h.errorResponse(ctx, statusFor(err), err)
		return
	}

	h.successResponse(ctx, http.StatusCreated, "пользователь успешно зарегистрирован", gin.H{"login": login})
}

// LoginUser аутентификация пользователя
// @Summary Вход в систему
// @Description Аутентификация с возвратом JWT токена
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.CredentialsRequest true "Логин и пароль"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *APIHandler) LoginUser(ctx *gin.Context) {
	var req dto.CredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err)
		return
	}

	principal, err := h.Accounts.Authenticate(ctx.Request.Context(), req.Login, req.Password)
	if err != nil {
		h.errorResponse(ctx, statusFor(err), err)
		return
	}

	token, ttl, err := h.Auth.IssueToken(principal)
	if err != nil {
		h.errorResponse(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(ttl.Seconds()),
		User:      dto.NewUserResponse(principal),
	})
}

// LogoutUser выход пользователя из системы
// @Summary Выход из системы
// @Description Добавляет токен в blacklist до истечения его срока
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *APIHandler) LogoutUser(ctx *gin.Context) {
	if err := h.Auth.RevokeToken(ctx.Request.Context(), middleware.CurrentToken(ctx)); err != nil {
		h.errorResponse(ctx, http.StatusInternalServerError, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "пользователь успешно вышел из системы", nil)
}

// GetUserProfile текущий пользователь
// @Summary Профиль пользователя
// @Description Возвращает логин и роли текущего пользователя
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/profile [get]
func (h *APIHandler) GetUserProfile(ctx *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(ctx)
	if !ok {
		h.errorResponse(ctx, http.StatusUnauthorized, service.ErrUnauthorized)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewUserResponse(principal))
}
