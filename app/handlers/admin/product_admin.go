package admin

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/services"
	"github.com/gorilla/mux"
)

const maxMultipartMemory = 8 << 20

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := other.ProductFilter{
		PageQuery:  helpers.ParsePageQuery(r),
		Search:     q.Get("search"),
		CategoryID: q.Get("categoryId"),
		Type:       q.Get("type"),
		Active:     helpers.ParseOptionalBool(q.Get("active")),
	}

	products, total, err := h.productSvc.List(r.Context(), filter)
	if err != nil {
		helpers.WriteError(h.render, w, "ListProducts", err)
		return
	}
	h.paginated(w, filter.PageQuery, services.NewProductResponses(products), total)
}

func (h *AdminHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.productSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.WriteError(h.render, w, "GetProduct", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, services.NewProductResponse(*product))
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input services.ProductInput
	if err := h.decode(r, &input); err != nil {
		helpers.WriteError(h.render, w, "CreateProduct", err)
		return
	}

	product, err := h.productSvc.Create(r.Context(), input)
	if err != nil {
		helpers.WriteError(h.render, w, "CreateProduct", err)
		return
	}
	log.Printf("CreateProduct: product %s (%s) created", product.ID, product.Slug)
	_ = h.render.JSON(w, http.StatusCreated, services.NewProductResponse(*product))
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var input services.ProductInput
	if err := h.decode(r, &input); err != nil {
		helpers.WriteError(h.render, w, "UpdateProduct", err)
		return
	}

	product, err := h.productSvc.Update(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		helpers.WriteError(h.render, w, "UpdateProduct", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, services.NewProductResponse(*product))
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.productSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.WriteError(h.render, w, "DeleteProduct", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.MessageResponse{Message: "Produk berhasil dihapus."})
}

func (h *AdminHandler) AddProductImage(w http.ResponseWriter, r *http.Request) {
	filename, data, err := readImageFile(w, r)
	if err != nil {
		helpers.WriteError(h.render, w, "AddProductImage", err)
		return
	}

	image, err := h.productSvc.AddImage(r.Context(), mux.Vars(r)["id"], filename, data)
	if err != nil {
		helpers.WriteError(h.render, w, "AddProductImage", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, image)
}

func (h *AdminHandler) DeleteProductImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.productSvc.DeleteImage(r.Context(), vars["id"], vars["imageId"]); err != nil {
		helpers.WriteError(h.render, w, "DeleteProductImage", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.MessageResponse{Message: "Gambar berhasil dihapus."})
}

// Upload stores an image without attaching it to a product.
func (h *AdminHandler) Upload(w http.ResponseWriter, r *http.Request) {
	filename, data, err := readImageFile(w, r)
	if err != nil {
		helpers.WriteError(h.render, w, "Upload", err)
		return
	}

	result, err := h.uploader.Upload(r.Context(), filename, data)
	if err != nil {
		helpers.WriteError(h.render, w, "Upload", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, result)
}

// readImageFile pulls the multipart "file" field and checks that it is an
// image no larger than services.MaxImageBytes.
func readImageFile(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxImageBytes+(1<<20))
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return "", nil, &helpers.AppError{Status: http.StatusBadRequest, Message: "Form upload tidak valid atau file terlalu besar.", Err: err}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, helpers.NewValidationError("File wajib diunggah pada field 'file'.")
	}
	defer file.Close()

	data, _, err := services.ReadImage(file)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}
