package controller

import (
	"net/http"
	"net/url"
	"time"

	"go-booking-api/core/controller"
	"go-booking-api/core/errors"
	"go-booking-api/core/logger"
	"go-booking-api/core/middleware"
	"go-booking-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type CookieOptions struct {
	Name   string
	Secure bool
}

type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
	cookie      CookieOptions
}

func NewAuthController(authService service.AuthServiceInterface, cookie CookieOptions) *AuthController {
	if cookie.Name == "" {
		cookie.Name = "session"
	}
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    authService,
		cookie:         cookie,
	}
}

// GoogleAuth redirects user to Google OAuth login page
// @Summary Start Google login
// @Tags Auth
// @Success 302
// @Router /auth/google [get]
func (controller *AuthController) GoogleAuth(c echo.Context) error {
	authURL, err := controller.AuthService.GetGoogleAuthURL(c.Request().Context())
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return c.Redirect(http.StatusFound, authURL)
}

// GoogleCallback handles the OAuth callback from Google
// @Summary Google login callback
// @Tags Auth
// @Param code query string true "Authorization code"
// @Param state query string true "CSRF state"
// @Success 302
// @Router /auth/google/callback [get]
func (controller *AuthController) GoogleCallback(c echo.Context) error {
	if errorParam := c.QueryParam("error"); errorParam != "" {
		logger.Warn("AuthController:GoogleCallback:ProviderError",
			"error", errorParam,
			"description", c.QueryParam("error_description"),
		)
		return c.Redirect(http.StatusFound, "/login?error="+url.QueryEscape(errorParam))
	}

	result, err := controller.AuthService.HandleGoogleCallback(c.Request().Context(), c.QueryParam("code"), c.QueryParam("state"))
	if err != nil {
		logger.Error("AuthController:GoogleCallback:Error", "code", err.Code, "message", err.Message)
		return c.Redirect(http.StatusFound, "/login?error="+url.QueryEscape(string(err.Code)))
	}

	c.SetCookie(&http.Cookie{
		Name:     controller.cookie.Name,
		Value:    result.SessionToken,
		Path:     "/",
		Expires:  result.ExpiresAt,
		MaxAge:   int(time.Until(result.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   controller.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Me returns the signed-in host
// @Summary Current user
// @Tags Auth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} controller.ErrorResponse
// @Router /auth/me [get]
func (controller *AuthController) Me(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	user, err := controller.AuthService.GetCurrentUser(c.Request().Context(), hostID)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.OK(c, map[string]any{"user": user})
}

// Logout revokes the session and clears the cookie
// @Summary Logout
// @Tags Auth
// @Success 200 {object} controller.SuccessFlag
// @Router /auth/logout [post]
func (controller *AuthController) Logout(c echo.Context) error {
	token := middleware.GetSessionToken(c)
	if token == "" {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	if err := controller.AuthService.Logout(c.Request().Context(), token); err != nil {
		return controller.ErrorResponse(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     controller.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   controller.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return controller.Success(c)
}
