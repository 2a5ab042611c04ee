package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/services"
	"github.com/gorilla/mux"
)

// OrderResponse adds the order total to the stored order.
type OrderResponse struct {
	models.Order
	TotalAmount int64 `json:"totalAmount"`
}

func newOrderResponse(o models.Order) OrderResponse {
	return OrderResponse{Order: o, TotalAmount: o.TotalAmount()}
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := other.OrderFilter{
		PageQuery: helpers.ParsePageQuery(r),
		Status:    q.Get("status"),
		Search:    q.Get("search"),
	}

	orders, total, err := h.orderSvc.List(r.Context(), filter)
	if err != nil {
		helpers.WriteError(h.render, w, "ListOrders", err)
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResponse(o))
	}
	h.paginated(w, filter.PageQuery, out, total)
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.WriteError(h.render, w, "GetOrder", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, newOrderResponse(*order))
}

func (h *AdminHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateOrderInput
	if err := h.decode(r, &input); err != nil {
		helpers.WriteError(h.render, w, "UpdateOrder", err)
		return
	}

	order, err := h.orderSvc.Update(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		helpers.WriteError(h.render, w, "UpdateOrder", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, newOrderResponse(*order))
}

func (h *AdminHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orderSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.WriteError(h.render, w, "DeleteOrder", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.MessageResponse{Message: "Pesanan berhasil dihapus."})
}
