package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ashkelon/forum/internal/api/metrics"
	"github.com/ashkelon/forum/internal/core/domain"
	"github.com/ashkelon/forum/internal/core/ports"
)

// AccountHandler serves the /account routes.
type AccountHandler struct {
	service ports.AccountService
	issuer  ports.TokenIssuer
}

func NewAccountHandler(service ports.AccountService, issuer ports.TokenIssuer) *AccountHandler {
	return &AccountHandler{service: service, issuer: issuer}
}

// authorization returns the raw Authorization header; services decode it.
func authorization(c echo.Context) string {
	return c.Request().Header.Get(echo.HeaderAuthorization)
}

// Register creates an account for the login and password in the Basic
// Authorization header.
//
// @Summary      Register a new account
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        Authorization  header    string          true  "Basic base64(login:password)"
// @Param        body           body      profileRequest  true  "Profile fields"
// @Success      201            {object}  profileResponse
// @Failure      400            {object}  errorResponse
// @Failure      401            {object}  errorResponse
// @Failure      409            {object}  errorResponse
// @Router       /account [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	profile, err := h.service.Register(c.Request().Context(), toProfileInput(req), authorization(c))
	if err != nil {
		return err
	}
	metrics.AccountsRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, toProfileResponse(profile))
}

// Login confirms the caller's credentials and returns the profile together
// with a bearer token.
//
// @Summary      Login
// @Tags         account
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  loginResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /account/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	profile, err := h.service.ResolveSession(c.Request().Context(), authorization(c))
	if err != nil {
		return err
	}

	token, err := h.issuer.Issue(profile.Login)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, Profile: toProfileResponse(profile)})
}

// Edit updates the caller's profile. Omitted fields are left unchanged.
//
// @Summary      Edit own profile
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      profileRequest  true  "Fields to change"
// @Success      200   {object}  profileResponse
// @Failure      401   {object}  errorResponse
// @Router       /account [put]
func (h *AccountHandler) Edit(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	profile, err := h.service.EditProfile(c.Request().Context(), toProfileInput(req), authorization(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Remove deletes an account. Owners may remove themselves; admins and
// moderators may remove anyone.
//
// @Summary      Remove an account
// @Tags         account
// @Produce      json
// @Security     BasicAuth
// @Param        login  path      string  true  "Account login"
// @Success      200    {object}  profileResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /account/{login} [delete]
func (h *AccountHandler) Remove(c echo.Context) error {
	profile, err := h.service.RemoveAccount(c.Request().Context(), c.Param("login"), authorization(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// GrantRole adds a role to an account.
//
// @Summary      Grant a role
// @Tags         account
// @Produce      json
// @Security     BasicAuth
// @Param        login  path      string  true  "Account login"
// @Param        role   path      string  true  "Role"  Enums(User, Admin, Moderator)
// @Success      200    {object}  rolesResponse
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /account/{login}/role/{role} [put]
func (h *AccountHandler) GrantRole(c echo.Context) error {
	return h.changeRole(c, h.service.GrantRole)
}

// RevokeRole removes a role from an account.
//
// @Summary      Revoke a role
// @Tags         account
// @Produce      json
// @Security     BasicAuth
// @Param        login  path      string  true  "Account login"
// @Param        role   path      string  true  "Role"  Enums(User, Admin, Moderator)
// @Success      200    {object}  rolesResponse
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /account/{login}/role/{role} [delete]
func (h *AccountHandler) RevokeRole(c echo.Context) error {
	return h.changeRole(c, h.service.RevokeRole)
}

func (h *AccountHandler) changeRole(c echo.Context, apply func(context.Context, string, domain.Role) ([]domain.Role, error)) error {
	role, err := domain.ParseRole(c.Param("role"))
	if err != nil {
		return err
	}

	login := c.Param("login")
	roles, err := apply(c.Request().Context(), login, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rolesResponse{Login: login, Roles: roleLabels(roles)})
}

// ChangePassword replaces the caller's password and restarts its validity
// period. Reachable with an expired password.
//
// @Summary      Change own password
// @Tags         account
// @Accept       json
// @Security     BasicAuth
// @Param        body  body  changePasswordRequest  true  "New password"
// @Success      204
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /account/password [put]
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.ChangePassword(c.Request().Context(), req.Password, authorization(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
