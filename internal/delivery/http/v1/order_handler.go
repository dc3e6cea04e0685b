package v1

import (
	"context"
	"log/slog"
	"net/http"

	"trendora-backend/internal/domain"
	"trendora-backend/internal/usecase"
	"trendora-backend/pkg/utils"
)

type OrderHandler struct {
	orderUC *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUC: uc}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req usecase.CreateOrderReq
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	order, err := h.orderUC.CreateOrder(r.Context(), user.ID, req)
	if err != nil {
		slog.Error("CreateOrder failed", "user_id", user.ID, "error", err)
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, "Order placed successfully", order)
}

func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orders, err := h.orderUC.GetMyOrders(r.Context(), user.ID)
	if err != nil {
		slog.Error("GetMyOrders failed", "user_id", user.ID, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "", orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Order ID required")
		return
	}

	order, err := h.orderUC.GetOrder(r.Context(), id, user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "", order)
}

type requestBody struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

func (h *OrderHandler) RequestReturn(w http.ResponseWriter, r *http.Request) {
	h.fileRequest(w, r, h.orderUC.RequestReturn, "Return request submitted")
}

func (h *OrderHandler) RequestReplace(w http.ResponseWriter, r *http.Request) {
	h.fileRequest(w, r, h.orderUC.RequestReplace, "Replacement request submitted")
}

func (h *OrderHandler) fileRequest(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, orderID, userID, reason, description string) (*domain.OrderView, error), message string) {
	user, ok := currentUser(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Order ID required")
		return
	}

	var req requestBody
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	order, err := fn(r.Context(), id, user.ID, req.Reason, req.Description)
	if err != nil {
		slog.Error("Order request failed", "order_id", id, "user_id", user.ID, "error", err)
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, message, order)
}

type paymentReq struct {
	TotalAmount float64 `json:"totalAmount"`
}

func (h *OrderHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(r); !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req paymentReq
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	intent, err := h.orderUC.CreatePaymentIntent(r.Context(), req.TotalAmount)
	if err != nil {
		slog.Error("CreatePaymentIntent failed", "error", err)
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "", intent)
}
