package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/services"
	"github.com/gorilla/mux"
)

func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	filter := other.CategoryFilter{
		PageQuery: helpers.ParsePageQuery(r),
		Search:    r.URL.Query().Get("search"),
	}

	categories, total, err := h.categorySvc.List(r.Context(), filter)
	if err != nil {
		helpers.WriteError(h.render, w, "ListCategories", err)
		return
	}
	h.paginated(w, filter.PageQuery, categories, total)
}

func (h *AdminHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.categorySvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.WriteError(h.render, w, "GetCategory", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input services.CategoryInput
	if err := h.decode(r, &input); err != nil {
		helpers.WriteError(h.render, w, "CreateCategory", err)
		return
	}

	category, err := h.categorySvc.Create(r.Context(), input)
	if err != nil {
		helpers.WriteError(h.render, w, "CreateCategory", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, category)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var input services.CategoryInput
	if err := h.decode(r, &input); err != nil {
		helpers.WriteError(h.render, w, "UpdateCategory", err)
		return
	}

	category, err := h.categorySvc.Update(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		helpers.WriteError(h.render, w, "UpdateCategory", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categorySvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.WriteError(h.render, w, "DeleteCategory", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.MessageResponse{Message: "Kategori berhasil dihapus."})
}
