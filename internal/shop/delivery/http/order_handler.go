package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/shop-console/internal/shop/domain"
	"github.com/tair/shop-console/internal/shop/usecase/command"
	"github.com/tair/shop-console/internal/shop/usecase/query"
)

// ListOrders handles GET /api/orders?search=&status=
// @Summary List orders
// @Description Newest first, optionally filtered
// @Tags Orders
// @Produce json
// @Param search query string false "Customer name or contact"
// @Param status query string false "Pending, Shipped or Delivered"
// @Success 200 {object} object{success=bool,data=object{orders=array,total=int}}
// @Router /api/orders [get]
func (h *ShopHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.qry.ListOrders.Handle(r.Context(), query.ListOrdersQuery{
		Search: r.URL.Query().Get("search"),
		Status: domain.OrderStatus(r.URL.Query().Get("status")),
	})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"orders": orders,
			"total":  len(orders),
		},
	})
}

// PlaceOrder handles POST /api/orders
// @Summary Place an order
// @Description Records the order and deducts stock by product name, flooring at zero
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body object{customerName=string,contactInfo=string,source=string,productName=string,productId=string,quantity=int} true "Order data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/orders [post]
func (h *ShopHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName string `json:"customerName"`
		ContactInfo  string `json:"contactInfo"`
		Source       string `json:"source"`
		ProductName  string `json:"productName"`
		ProductID    string `json:"productId"`
		Quantity     int    `json:"quantity"`
	}
	if !decode(w, r, &req) {
		return
	}

	order, err := h.cmd.PlaceOrder.Handle(r.Context(), command.PlaceOrderCommand{
		CustomerName: req.CustomerName,
		ContactInfo:  req.ContactInfo,
		Source:       domain.OrderSource(req.Source),
		ProductName:  req.ProductName,
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
	})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order placed successfully",
		Data:    order,
	})
}

// SimulateOrder handles POST /api/orders/simulate
// @Summary Simulate a web order
// @Description Demo helper
// @Tags Orders
// @Produce json
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/orders/simulate [post]
func (h *ShopHandler) SimulateOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.cmd.SimulateOrder.Handle(r.Context())
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Demo order placed", Data: order})
}

// MarkShipped handles POST /api/orders/{id}/ship
// @Summary Mark order shipped
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body object{trackingNumber=string,shippingDate=string} true "Shipment data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders/{id}/ship [post]
func (h *ShopHandler) MarkShipped(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrackingNumber string `json:"trackingNumber"`
		ShippingDate   string `json:"shippingDate"`
	}
	if !decode(w, r, &req) {
		return
	}

	order, err := h.cmd.MarkShipped.Handle(r.Context(), command.MarkShippedCommand{
		OrderID:        mux.Vars(r)["id"],
		TrackingNumber: req.TrackingNumber,
		ShippingDate:   req.ShippingDate,
	})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Order marked as shipped", Data: order})
}

// MarkDelivered handles POST /api/orders/{id}/deliver
// @Summary Mark order delivered
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders/{id}/deliver [post]
func (h *ShopHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	order, err := h.cmd.MarkDelivered.Handle(r.Context(), command.MarkDeliveredCommand{OrderID: mux.Vars(r)["id"]})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Order marked as delivered", Data: order})
}

// DeleteOrder handles DELETE /api/orders/{id}
// @Summary Delete an order
// @Description Stock is not restored (admin session required)
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders/{id} [delete]
func (h *ShopHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.cmd.DeleteOrder.Handle(r.Context(), command.DeleteOrderCommand{OrderID: mux.Vars(r)["id"]}); err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Order deleted successfully"})
}
