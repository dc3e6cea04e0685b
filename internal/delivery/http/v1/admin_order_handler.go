package v1

import (
	"log/slog"
	"net/http"

	"trendora-backend/internal/domain"
	"trendora-backend/internal/usecase"
	"trendora-backend/pkg/utils"
)

type AdminOrderHandler struct {
	orderUC *usecase.OrderUsecase
}

func NewAdminOrderHandler(uc *usecase.OrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{orderUC: uc}
}

func (h *AdminOrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.OrderFilter{
		Page:   utils.ParseInt(q.Get("page"), 1),
		Limit:  utils.ParseInt(q.Get("limit"), 20),
		Status: q.Get("status"),
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	orders, total, err := h.orderUC.GetAllOrders(r.Context(), filter)
	if err != nil {
		slog.Error("GetAllOrders failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		totalPages++
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    orders,
		Meta: domain.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	})
}

// GetOrder is the admin detail view: the order plus the customer record.
func (h *AdminOrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Order ID required")
		return
	}

	order, customer, err := h.orderUC.GetOrderWithCustomer(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"order":    order,
		"customer": customer,
	})
}

// Advance moves the order one step along the standard fulfilment chain.
func (h *AdminOrderHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Order ID required")
		return
	}

	order, err := h.orderUC.Advance(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Order status updated", order)
}

type setStatusReq struct {
	Status string `json:"status"`
}

// SetStatus overrides the order status with whatever the admin submits. This
// is also the only path to the return/replace approval statuses.
func (h *AdminOrderHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Order ID required")
		return
	}

	var req setStatusReq
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	order, err := h.orderUC.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		slog.Error("SetStatus failed", "order_id", id, "status", req.Status, "error", err)
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Order status updated", order)
}

func (h *AdminOrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Order ID required")
		return
	}

	if err := h.orderUC.DeleteOrder(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Order deleted", nil)
}
