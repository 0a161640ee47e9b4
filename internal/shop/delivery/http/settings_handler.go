package http

import (
	"net/http"

	"github.com/tair/shop-console/internal/shop/usecase/command"
)

// GetSettings handles GET /api/settings
// @Summary Get settings
// @Tags Settings
// @Produce json
// @Success 200 {object} object{success=bool,data=object{isPasswordSet=bool,instagram=object}}
// @Router /api/settings [get]
func (h *ShopHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	view, err := h.qry.Settings.Handle(r.Context())
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: view})
}

// SetupPassword handles POST /api/settings/password/setup
// @Summary Initial admin password
// @Description Only while the factory password is in use
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body object{password=string,confirm=string} true "Password"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/settings/password/setup [post]
func (h *ShopHandler) SetupPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
		Confirm  string `json:"confirm"`
	}
	if !decode(w, r, &req) {
		return
	}

	if err := h.cmd.Admin.Setup(r.Context(), command.SetupPasswordCommand{Password: req.Password, Confirm: req.Confirm}); err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Admin password set"})
}

// ChangePassword handles POST /api/settings/password/change
// @Summary Change admin password
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body object{currentPassword=string,newPassword=string} true "Passwords"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/settings/password/change [post]
func (h *ShopHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if !decode(w, r, &req) {
		return
	}

	err := h.cmd.Admin.Change(r.Context(), command.ChangePasswordCommand{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Admin password changed"})
}

// Login handles POST /api/admin/login
// @Summary Admin login
// @Description Exchanges the admin password for a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{password=string} true "Password"
// @Success 200 {object} object{success=bool,data=object{token=string,expiresAt=string}}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 429 {object} object{success=bool,error=string}
// @Router /api/admin/login [post]
func (h *ShopHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.cmd.Admin.Login(r.Context(), command.LoginCommand{Password: req.Password})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Login successful", Data: resp})
}

// ConnectInstagram handles POST /api/settings/instagram
// @Summary Connect Instagram
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body object{handle=string} true "Instagram handle"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/settings/instagram [post]
func (h *ShopHandler) ConnectInstagram(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Handle string `json:"handle"`
	}
	if !decode(w, r, &req) {
		return
	}

	cfg, err := h.cmd.Instagram.Connect(r.Context(), command.ConnectInstagramCommand{Handle: req.Handle})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Instagram connected", Data: cfg})
}

// DisconnectInstagram handles DELETE /api/settings/instagram
// @Summary Disconnect Instagram
// @Tags Settings
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Router /api/settings/instagram [delete]
func (h *ShopHandler) DisconnectInstagram(w http.ResponseWriter, r *http.Request) {
	if err := h.cmd.Instagram.Disconnect(r.Context()); err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Instagram disconnected"})
}
