package http

import (
	"context"
	"net/http"

	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/internal/users/service"
	"github.com/integra-admin/integra/pkg/httpx"
	"github.com/integra-admin/integra/pkg/usersdk"
)

type RegisterHandler struct {
	Service *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Register an account
//	@Description	Creates an account and grants the self-service roles. The roles field of the body is ignored.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		usersdk.RegisterRequest		true	"Account details"
//	@Success		200		{object}	usersdk.RegisterResponse	"succeeded, user"
//	@Failure		400		{object}	usersdk.ErrorResponse		"validation failure or duplicate username"
//	@Failure		503		{object}	usersdk.ErrorResponse		"store unavailable"
//	@Router			/api/users/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serveRegister(w, r, h.Service.RegisterSelfService)
}

type SponsorUserHandler struct {
	Service *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Create a sponsor user
//	@Description	Creates an account bound to an existing sponsor with the Sponsor, Sponsor Read and Sponsor Write roles. Requires the Admin role.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		usersdk.RegisterRequest		true	"Account details including sponsorId"
//	@Success		200		{object}	usersdk.RegisterResponse	"succeeded, user"
//	@Failure		400		{object}	usersdk.ErrorResponse		"validation failure, unknown sponsor or duplicate username"
//	@Failure		401		{object}	usersdk.ErrorResponse		"missing or invalid token"
//	@Failure		403		{object}	usersdk.ErrorResponse		"Admin role required"
//	@Security		BearerAuth
//	@Router			/api/users/create-sponsor-user [post].
func (h *SponsorUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serveRegister(w, r, h.Service.RegisterSponsorUser)
}

func serveRegister(
	w http.ResponseWriter,
	r *http.Request,
	register func(context.Context, usersdk.RegisterRequest) (domain.Account, error),
) {
	var req usersdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	account, err := register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, usersdk.RegisterResponse{
		Succeeded: true,
		User:      toSummary(account, ""),
	})
}

type LoginHandler struct {
	LoginService *service.LoginService
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Exchanges a username and password for a signed JWT. Every failure yields the same 400 body.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		usersdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	usersdk.LoginResponse	"token"
//	@Failure		400		{object}	usersdk.ErrorResponse	"Username or password is incorrect."
//	@Failure		503		{object}	usersdk.ErrorResponse	"store unavailable"
//	@Router			/api/users/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req usersdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	token, err := h.LoginService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, usersdk.LoginResponse{Token: token})
}
