package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/myne7x/store-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	catalog ports.CatalogService
}

func NewProductHandler(catalog ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /v1/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        search  query     string  false  "Match on title or description"
// @Param        type    query     string  false  "Filter by product type (free|paid)"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listProductsResponse
// @Failure      503     {object}  errorResponse
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.catalog.List(c.Request().Context(), ports.ListProductsFilter{
		Search:      c.QueryParam("search"),
		ProductType: c.QueryParam("type"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	items := make([]productSummaryResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, productSummaryResponse{
			ID:             p.ID,
			Title:          p.Title,
			Description:    p.Description,
			ProductType:    p.ProductType,
			Price:          p.Price,
			Images:         p.Images,
			DownloadsCount: p.DownloadsCount,
			CreatedAt:      p.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, listProductsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /v1/products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /v1/products (admin only).
//
// @Summary      Publish a new product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	product, err := h.catalog.Create(c.Request().Context(), ports.CreateProductInput{
		ActorID:     userID,
		ActorRole:   role,
		Title:       req.Title,
		Description: req.Description,
		ProductType: req.ProductType,
		Price:       req.Price,
		BucketName:  req.BucketName,
		FilePaths:   req.FilePaths,
		Images:      req.Images,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /v1/products/:id (admin only).
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to update"
// @Success      200   {object}  domain.Product
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	product, err := h.catalog.Update(c.Request().Context(), ports.UpdateProductInput{
		ActorRole:   role,
		ProductID:   c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		FilePaths:   req.FilePaths,
		Images:      req.Images,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /v1/products/:id (admin only).
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.catalog.Delete(c.Request().Context(), role, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
