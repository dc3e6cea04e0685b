package v1

import (
	"net/http"

	"trendora-backend/internal/domain"
	"trendora-backend/pkg/utils"
)

// MetaHandler serves the static option lists clients need to render order
// forms and admin filters.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

func (h *MetaHandler) GetOrderOptions(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data: map[string]interface{}{
			"orderStatuses":  domain.OrderStatuses,
			"paymentMethods": domain.PaymentMethods,
		},
	})
}
