package handlers

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/middlewares"
	"github.com/Rakhulsr/go-kindergarten/app/services"
	"github.com/Rakhulsr/go-kindergarten/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	authSvc      *services.AuthService
	sessionStore sessions.SessionStore
	validator    *validator.Validate
}

func NewAuthHandler(r *render.Render, authSvc *services.AuthService, sessionStore sessions.SessionStore, validator *validator.Validate) *AuthHandler {
	return &AuthHandler{
		render:       r,
		authSvc:      authSvc,
		sessionStore: sessionStore,
		validator:    validator,
	}
}

type CSRFResponse struct {
	CSRFToken string `json:"csrfToken"`
}

func (h *AuthHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	_ = h.render.JSON(w, http.StatusOK, CSRFResponse{CSRFToken: csrf.Token(r)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := helpers.DecodeJSON(r, &input); err != nil {
		helpers.WriteError(h.render, w, "Login", err)
		return
	}
	if err := h.validator.Struct(&input); err != nil {
		helpers.WriteError(h.render, w, "Login", helpers.FromValidation(err))
		return
	}

	user, err := h.authSvc.Login(r.Context(), input)
	if err != nil {
		helpers.WriteError(h.render, w, "Login", err)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		helpers.WriteError(h.render, w, "Login", err)
		return
	}

	log.Printf("Login: user %s logged in", user.Email)
	_ = h.render.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		helpers.WriteError(h.render, w, "Logout", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.MessageResponse{Message: "Berhasil logout."})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middlewares.CurrentUser(r)
	if user == nil {
		helpers.WriteError(h.render, w, "Me", helpers.NewUnauthorizedError("Silakan login terlebih dahulu."))
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user)
}

// LoginPage renders the admin login form. Logged-in users go straight to the
// dashboard.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middlewares.CurrentUser(r) != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	data := helpers.GetBaseData(r, "Login Admin")
	data.IsAdminPage = true
	_ = h.render.HTML(w, http.StatusOK, "admin/login", data)
}
