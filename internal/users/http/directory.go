package http

import (
	"net/http"

	"github.com/integra-admin/integra/internal/users/service"
	"github.com/integra-admin/integra/pkg/httpx"
)

type DirectoryHandler struct {
	DirectoryService *service.DirectoryService
}

// HandleSponsors godoc
//
//	@Summary		List sponsor users
//	@Description	Returns every account holding the Sponsor role together with its sponsor's name. Requires the Admin role.
//	@Tags			Directory
//	@Produce		json
//	@Success		200	{array}		usersdk.AccountSummary	"sponsor accounts"
//	@Failure		401	{object}	usersdk.ErrorResponse	"missing or invalid token"
//	@Failure		403	{object}	usersdk.ErrorResponse	"Admin role required"
//	@Failure		503	{object}	usersdk.ErrorResponse	"store unavailable"
//	@Security		BearerAuth
//	@Router			/api/users/all-sponsors [get].
func (h *DirectoryHandler) HandleSponsors(w http.ResponseWriter, r *http.Request) {
	entries, err := h.DirectoryService.ListBySponsorRole(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSummaries(entries))
}

// HandleAll godoc
//
//	@Summary		List all users
//	@Description	Returns every account. Requires the Admin role.
//	@Tags			Directory
//	@Produce		json
//	@Success		200	{array}		usersdk.AccountSummary	"accounts"
//	@Failure		401	{object}	usersdk.ErrorResponse	"missing or invalid token"
//	@Failure		403	{object}	usersdk.ErrorResponse	"Admin role required"
//	@Failure		503	{object}	usersdk.ErrorResponse	"store unavailable"
//	@Security		BearerAuth
//	@Router			/api/users/all-users [get].
func (h *DirectoryHandler) HandleAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.DirectoryService.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSummaries(entries))
}
