package http

import (
	"net/http"

	"github.com/integra-admin/integra/internal/users/service"
	"github.com/integra-admin/integra/pkg/httpx"
	"github.com/integra-admin/integra/pkg/slogx"
	"github.com/integra-admin/integra/pkg/usersdk"
)

type RolesHandler struct {
	RolesService *service.RolesService
}

// HandleList godoc
//
//	@Summary		List all roles
//	@Description	Returns the role vocabulary. Requires the Admin role.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	usersdk.ListRolesResponse	"role names"
//	@Failure		401	{object}	usersdk.ErrorResponse		"missing or invalid token"
//	@Failure		403	{object}	usersdk.ErrorResponse		"Admin role required"
//	@Security		BearerAuth
//	@Router			/api/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RolesService.ListRoles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := usersdk.ListRolesResponse{Roles: make([]string, len(roles))}
	for i, role := range roles {
		response.Roles[i] = string(role.Name)
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleAssign godoc
//
//	@Summary		Assign roles to a user
//	@Description	Adds roles to an existing account. Roles already held are kept. Requires the Admin role.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			username	path		string						true	"Username, case-insensitive"
//	@Param			body		body		usersdk.AssignRolesRequest	true	"Roles to add"
//	@Success		200			{object}	usersdk.AccountSummary		"updated account"
//	@Failure		400			{object}	usersdk.ErrorResponse		"unknown or empty roles"
//	@Failure		401			{object}	usersdk.ErrorResponse		"missing or invalid token"
//	@Failure		403			{object}	usersdk.ErrorResponse		"Admin role required"
//	@Failure		404			{object}	usersdk.ErrorResponse		"account not found"
//	@Security		BearerAuth
//	@Router			/api/users/{username}/roles [post].
func (h *RolesHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req usersdk.AssignRolesRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	account, err := h.RolesService.AssignRoles(r.Context(), r.PathValue("username"), req.Roles)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("roles assigned",
		"account_id", account.ID, "roles", req.Roles, "by", httpx.UserIDFromContext(r.Context()))
	httpx.WriteJSON(w, http.StatusOK, toSummary(account, ""))
}
