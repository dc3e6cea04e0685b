package v1

import (
	"log/slog"
	"net/http"

	"trendora-backend/internal/domain"
	"trendora-backend/internal/usecase"
	"trendora-backend/pkg/utils"
)

type AdminCatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewAdminCatalogHandler(uc *usecase.CatalogUsecase) *AdminCatalogHandler {
	return &AdminCatalogHandler{catalogUC: uc}
}

func (h *AdminCatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := utils.DecodeBody(r, &product); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if err := h.catalogUC.CreateProduct(r.Context(), &product); err != nil {
		slog.Error("CreateProduct failed", "name", product.Name, "error", err)
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, "Product created", product)
}

type updateProductReq struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Price          *float64 `json:"price"`
	Stock          *int     `json:"stock"`
	Category       *string  `json:"category"`
	Subcategory    *string  `json:"subcategory"`
	SubSubcategory *string  `json:"subSubcategory"`
}

func (h *AdminCatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	var req updateProductReq
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	product, err := h.catalogUC.UpdateProduct(r.Context(), id, usecase.UpdateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Stock:          req.Stock,
		CategoryID:     req.Category,
		Subcategory:    req.Subcategory,
		SubSubcategory: req.SubSubcategory,
	})
	if err != nil {
		slog.Error("UpdateProduct failed", "product_id", id, "error", err)
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Product updated", product)
}

type variantImagesReq struct {
	Colors []domain.Color `json:"colors"`
}

func (h *AdminCatalogHandler) SetVariantImages(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	var req variantImagesReq
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	product, err := h.catalogUC.SetVariantImages(r.Context(), id, req.Colors)
	if err != nil {
		slog.Error("SetVariantImages failed", "product_id", id, "error", err)
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Product variants updated", product)
}

// DeleteProductImage removes a single image. With a colorId query parameter it
// targets that color's image list, otherwise the general images.
func (h *AdminCatalogHandler) DeleteProductImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	imageID := r.URL.Query().Get("imageId")
	if id == "" || imageID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID and image ID required")
		return
	}
	colorID := r.URL.Query().Get("colorId")

	product, err := h.catalogUC.DeleteProductImage(r.Context(), id, colorID, imageID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Image removed", product)
}

func (h *AdminCatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	if err := h.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		slog.Error("DeleteProduct failed", "product_id", id, "error", err)
		writeDomainError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Product deleted", nil)
}
