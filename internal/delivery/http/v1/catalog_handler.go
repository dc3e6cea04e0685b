package v1

import (
	"log/slog"
	"net/http"

	"trendora-backend/internal/domain"
	"trendora-backend/internal/usecase"
	"trendora-backend/pkg/utils"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: uc}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Keyword:    q.Get("keyword"),
		CategoryID: q.Get("category"),
		Limit:      utils.ParseInt(q.Get("limit"), 20),
		Offset:     utils.ParseInt(q.Get("offset"), 0),
	}

	products, total, err := h.catalogUC.ListProducts(r.Context(), filter)
	if err != nil {
		slog.Error("ListProducts failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": products,
		"total":    total,
	})
}

func (h *CatalogHandler) GetTopRated(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUC.GetTopRated(r.Context())
	if err != nil {
		slog.Error("GetTopRated failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "", products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	product, err := h.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "", product)
}

type reviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *CatalogHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	var req reviewReq
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	product, err := h.catalogUC.SubmitReview(r.Context(), id, domain.Review{
		UserID:  user.ID,
		Name:    user.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		slog.Error("SubmitReview failed", "product_id", id, "user_id", user.ID, "error", err)
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Review submitted", product)
}
