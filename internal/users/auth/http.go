// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tienda/internal/platform/middleware"
	requestutil "github.com/taibuivan/tienda/internal/platform/request"
	"github.com/taibuivan/tienda/internal/platform/respond"
	"github.com/taibuivan/tienda/internal/platform/sec"
	"github.com/taibuivan/tienda/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the session endpoints.
//
// # Scope
//
// Account entry points: registration, login, the current session, logout
// and password recovery.
type Handler struct {
	authService   *Service
	secureCookies bool
}

// NewHandler constructs a new [Handler]. secureCookies marks the session
// cookie Secure, which production deployments behind TLS require.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// RegisterRoutes mounts the session endpoints.
//
// # Endpoints
//   - POST /register        : Creates an account and its cart.
//   - POST /login           : Sets the session cookie and returns the token.
//   - GET  /current         : Returns the signed-in user.
//   - POST /logout          : Clears the session cookie.
//   - POST /forgot-password : Emails a reset link.
//   - POST /reset-password  : Sets a new password with a reset token.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Get("/current", handler.current)
	router.Post("/logout", handler.logout)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

/*
Register handles the creation of a new account.

POST /api/sessions/register

Response:
  - 201: User: Created account, without password
  - 400: VALIDATION_ERROR
  - 409: DUPLICATE_IDENTITY
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and establishes a session.

POST /api/sessions/login

Description: On success the token is set as the HTTP-only "jwt" cookie and
also returned in the body for non-browser clients.

Response:
  - 200: Session: Token and user with populated cart
  - 401: INVALID_CREDENTIALS
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, sec.SessionCookie(session.Token, handler.authService.SessionTTL(), handler.secureCookies))
	respond.OK(writer, session)
}

/*
Current returns the account behind the session cookie or bearer token.

GET /api/sessions/current

Response:
  - 200: User with populated cart
  - 401: UNAUTHORIZED
*/
func (handler *Handler) current(writer http.ResponseWriter, request *http.Request) {
	token, _ := middleware.SessionToken(request)

	user, err := handler.authService.CurrentUser(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Logout clears the session cookie and redirects to the storefront root.

POST /api/sessions/logout

Response:
  - 302: Redirect to "/"
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	http.SetCookie(writer, sec.ExpiredSessionCookie(handler.secureCookies))
	http.Redirect(writer, request, "/", http.StatusFound)
}

/*
ForgotPassword starts password recovery.

POST /api/sessions/forgot-password

Response:
  - 200: Generic message, whether or not the account exists
  - 400: VALIDATION_ERROR for a malformed email
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.RequestPasswordReset(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "If this email is registered, a reset link has been sent.")
}

/*
ResetPassword completes password recovery.

POST /api/sessions/reset-password

Response:
  - 200: Password updated
  - 400: VALIDATION_ERROR or INVALID_OR_EXPIRED_TOKEN
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Password updated successfully")
}
