package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

// ProductHandler serves the public, read-only catalog.
type ProductHandler struct {
	productSvc  *services.ProductService
	categorySvc *services.CategoryService
	render      *render.Render
}

func NewProductHandler(p *services.ProductService, c *services.CategoryService, r *render.Render) *ProductHandler {
	return &ProductHandler{productSvc: p, categorySvc: c, render: r}
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categorySvc.ListPublic(r.Context())
	if err != nil {
		helpers.WriteError(h.render, w, "PublicCategories", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"data": categories})
}

// Products lists active products only, whatever the query says.
func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	active := true
	q := r.URL.Query()
	filter := other.ProductFilter{
		PageQuery:  helpers.ParsePageQuery(r),
		Search:     q.Get("search"),
		CategoryID: q.Get("categoryId"),
		Type:       q.Get("type"),
		Active:     &active,
	}

	products, total, err := h.productSvc.List(r.Context(), filter)
	if err != nil {
		helpers.WriteError(h.render, w, "PublicProducts", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, other.PaginatedResponse{
		Data:       services.NewProductResponses(products),
		Pagination: other.NewPagination(filter.PageQuery, total),
	})
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	product, err := h.productSvc.GetPublicBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		helpers.WriteError(h.render, w, "PublicProductDetail", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, services.NewProductResponse(*product))
}
