package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/middlewares"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/services"
	"github.com/gorilla/mux"
)

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := other.UserFilter{
		PageQuery: helpers.ParsePageQuery(r),
		Search:    r.URL.Query().Get("search"),
	}

	users, total, err := h.userSvc.List(r.Context(), filter)
	if err != nil {
		helpers.WriteError(h.render, w, "ListUsers", err)
		return
	}
	h.paginated(w, filter.PageQuery, users, total)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.WriteError(h.render, w, "GetUser", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user)
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input services.CreateUserInput
	if err := h.decode(r, &input); err != nil {
		helpers.WriteError(h.render, w, "CreateUser", err)
		return
	}

	user, err := h.userSvc.Create(r.Context(), input)
	if err != nil {
		helpers.WriteError(h.render, w, "CreateUser", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, user)
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateUserInput
	if err := h.decode(r, &input); err != nil {
		helpers.WriteError(h.render, w, "UpdateUser", err)
		return
	}

	user, err := h.userSvc.Update(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		helpers.WriteError(h.render, w, "UpdateUser", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	currentID := ""
	if current := middlewares.CurrentUser(r); current != nil {
		currentID = current.ID
	}

	if err := h.userSvc.Delete(r.Context(), mux.Vars(r)["id"], currentID); err != nil {
		helpers.WriteError(h.render, w, "DeleteUser", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.MessageResponse{Message: "Pengguna berhasil dihapus."})
}
