package handlers

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/repositories"
	"github.com/Rakhulsr/go-kindergarten/app/services"
	"github.com/unrolled/render"
)

const featuredProductLimit = 8

type HomeHandler struct {
	render       *render.Render
	categoryRepo repositories.CategoryRepositoryImpl
	productSvc   *services.ProductService
}

func NewHomeHandler(r *render.Render, c repositories.CategoryRepositoryImpl, p *services.ProductService) *HomeHandler {
	return &HomeHandler{
		render:       r,
		categoryRepo: c,
		productSvc:   p,
	}
}

// page renders a marketing template. Catalog errors are logged and the page is
// still shown, without the listing.
func (h *HomeHandler) page(w http.ResponseWriter, r *http.Request, tmpl, title string, withCatalog bool) {
	data := other.MarketingPageData{BasePageData: helpers.GetBaseData(r, title)}

	if withCatalog {
		categories, err := h.categoryRepo.GetActiveWithProducts(r.Context())
		if err != nil {
			log.Printf("HomeHandler.%s: %v", tmpl, err)
		}
		data.Categories = categories

		featured, err := h.productSvc.Featured(r.Context(), featuredProductLimit)
		if err != nil {
			log.Printf("HomeHandler.%s: Gagal mengambil produk unggulan: %v", tmpl, err)
		}
		data.Featured = featured
	}

	_ = h.render.HTML(w, http.StatusOK, tmpl, data)
}

func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "home", "Beranda", true)
}

func (h *HomeHandler) About(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "about", "Tentang Kami", false)
}

func (h *HomeHandler) Programs(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "programs", "Program", true)
}

func (h *HomeHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "contact", "Kontak", false)
}
