package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render      *render.Render
	validator   *validator.Validate
	reportSvc   *services.ReportService
	productSvc  *services.ProductService
	categorySvc *services.CategoryService
	userSvc     *services.UserService
	orderSvc    *services.OrderService
	uploader    services.ImageUploader
}

func NewAdminHandler(
	render *render.Render,
	validator *validator.Validate,
	reportSvc *services.ReportService,
	productSvc *services.ProductService,
	categorySvc *services.CategoryService,
	userSvc *services.UserService,
	orderSvc *services.OrderService,
	uploader services.ImageUploader,
) *AdminHandler {
	return &AdminHandler{
		render:      render,
		validator:   validator,
		reportSvc:   reportSvc,
		productSvc:  productSvc,
		categorySvc: categorySvc,
		userSvc:     userSvc,
		orderSvc:    orderSvc,
		uploader:    uploader,
	}
}

// decode reads a JSON body into dst and validates it.
func (h *AdminHandler) decode(r *http.Request, dst interface{}) error {
	if err := helpers.DecodeJSON(r, dst); err != nil {
		return err
	}
	if err := h.validator.Struct(dst); err != nil {
		return helpers.FromValidation(err)
	}
	return nil
}

func (h *AdminHandler) paginated(w http.ResponseWriter, q other.PageQuery, data interface{}, total int64) {
	_ = h.render.JSON(w, http.StatusOK, other.PaginatedResponse{
		Data:       data,
		Pagination: other.NewPagination(q, total),
	})
}

func (h *AdminHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	days := helpers.ParseDays(r.URL.Query().Get("days"), services.DefaultReportDays)

	report, err := h.reportSvc.DashboardReport(r.Context(), days)
	if err != nil {
		helpers.WriteError(h.render, w, "GetReports", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, report)
}

func (h *AdminHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	days := helpers.ParseDays(r.URL.Query().Get("days"), services.DefaultTransactionDays)

	report, err := h.reportSvc.TransactionReport(r.Context(), days)
	if err != nil {
		helpers.WriteError(h.render, w, "GetTransactions", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, report)
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportSvc.Stats(r.Context())
	if err != nil {
		helpers.WriteError(h.render, w, "GetStats", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, stats)
}

type AdminPageData struct {
	other.BasePageData
	ReportDays      int
	TransactionDays int
}

// DashboardPage renders the admin shell; all figures are fetched by the page
// from the dashboard API.
func (h *AdminHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminPageData{
		BasePageData:    helpers.GetBaseData(r, "Dashboard Admin"),
		ReportDays:      services.DefaultReportDays,
		TransactionDays: services.DefaultTransactionDays,
	}
	data.IsAdminPage = true

	_ = h.render.HTML(w, http.StatusOK, "admin/dashboard", data)
}
