package handlers

import (
	"net/http"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the fixed lists the add-expense form is built from
type CatalogHandler struct{}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListCategories returns the default categories and the icon catalogue
// @Summary List categories
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.CategoriesResponse "Default categories and icons"
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	icons := models.AllCategoryIcons()
	response := dto.CategoriesResponse{
		Categories: models.DefaultCategories(),
		Icons:      make([]dto.CategoryIconResponse, len(icons)),
	}
	for i, icon := range icons {
		response.Icons[i] = dto.CategoryIconResponse{ID: icon, Symbol: icon.Symbol()}
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.JSON(http.StatusOK, response)
}

// ListPaymentMethods returns the accepted payment methods
// @Summary List payment methods
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.PaymentMethodsResponse "Payment methods"
// @Router /payment-methods [get]
func (h *CatalogHandler) ListPaymentMethods(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.JSON(http.StatusOK, dto.PaymentMethodsResponse{
		PaymentMethods: models.AllPaymentMethods(),
		CustomMethod:   models.PaymentMethodOther,
	})
}
