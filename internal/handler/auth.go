package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seminarroom/bookdesk/internal/model"
)

func (h *Handler) RequestOTP(c echo.Context) error {
	var req model.RequestOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.respondErr(c, err)
	}
	if err := h.authSvc.RequestOTP(c.Request().Context(), req.Email, req.IsRegistration); err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("OTP sent to email"))
}

func (h *Handler) VerifyOTP(c echo.Context) error {
	var req model.VerifyOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.respondErr(c, err)
	}
	token, err := h.authSvc.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("email verified").With("verifiedEmailToken", token))
}

func (h *Handler) Register(c echo.Context) error {
	var req model.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.respondErr(c, err)
	}
	user, token, err := h.authSvc.Register(c.Request().Context(), req)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, model.Success("registered").
		With("user", user).
		With("token", token))
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.respondErr(c, err)
	}
	user, token, err := h.authSvc.Login(c.Request().Context(), req)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("logged in").
		With("user", user).
		With("token", token))
}

func (h *Handler) ForgotPassword(c echo.Context) error {
	var req model.ForgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.respondErr(c, err)
	}
	if err := h.authSvc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("reset code sent to email"))
}

func (h *Handler) ResetPassword(c echo.Context) error {
	var req model.ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.respondErr(c, err)
	}
	if err := h.authSvc.ResetPassword(c.Request().Context(), req); err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, model.Success("password updated"))
}
