package handlers

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

// OrderHandler takes registration and purchase inquiries from the public site.
type OrderHandler struct {
	render    *render.Render
	orderSvc  *services.OrderService
	validator *validator.Validate
}

func NewOrderHandler(render *render.Render, orderSvc *services.OrderService, validator *validator.Validate) *OrderHandler {
	return &OrderHandler{
		render:    render,
		orderSvc:  orderSvc,
		validator: validator,
	}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input services.CreateOrderInput
	if err := helpers.DecodeJSON(r, &input); err != nil {
		helpers.WriteError(h.render, w, "CreateOrder", err)
		return
	}
	if err := h.validator.Struct(&input); err != nil {
		helpers.WriteError(h.render, w, "CreateOrder", helpers.FromValidation(err))
		return
	}

	order, err := h.orderSvc.CreatePublicOrder(r.Context(), input)
	if err != nil {
		helpers.WriteError(h.render, w, "CreateOrder", err)
		return
	}

	log.Printf("CreateOrder: order %s received from %s", order.ID, order.CustomerName)
	_ = h.render.JSON(w, http.StatusCreated, order)
}
