package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/shop-console/internal/shop/usecase/command"
	"github.com/tair/shop-console/internal/shop/usecase/query"
)

// ListProducts handles GET /api/products
// @Summary List products
// @Description Catalog in insertion order
// @Tags Products
// @Produce json
// @Success 200 {object} object{success=bool,data=object{products=array,total=int}}
// @Router /api/products [get]
func (h *ShopHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.qry.ListProducts.Handle(r.Context())
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": products,
			"total":    len(products),
		},
	})
}

// GetProduct handles GET /api/products/{id}
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *ShopHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.qry.GetProduct.Handle(r.Context(), query.GetProductQuery{ID: mux.Vars(r)["id"]})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// AddProduct handles POST /api/products
// @Summary Add a product
// @Description Creates the product and its zero-stock inventory record
// @Tags Products
// @Accept json
// @Produce json
// @Param request body object{name=string,category=string,basePrice=int,image=string} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/products [post]
func (h *ShopHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		Category  string `json:"category"`
		BasePrice int64  `json:"basePrice"`
		Image     string `json:"image"`
	}
	if !decode(w, r, &req) {
		return
	}

	product, err := h.cmd.AddProduct.Handle(r.Context(), command.AddProductCommand{
		Name:      req.Name,
		Category:  req.Category,
		BasePrice: req.BasePrice,
		Image:     req.Image,
	})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// UpdateProduct handles PATCH /api/products/{id}
// @Summary Update a product
// @Description Partial update; name and image changes are mirrored to inventory
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body object{name=string,basePrice=int,image=string} true "Fields to change"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [patch]
func (h *ShopHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      *string `json:"name"`
		BasePrice *int64  `json:"basePrice"`
		Image     *string `json:"image"`
	}
	if !decode(w, r, &req) {
		return
	}

	product, err := h.cmd.UpdateProduct.Handle(r.Context(), command.UpdateProductCommand{
		ID:        mux.Vars(r)["id"],
		Name:      req.Name,
		BasePrice: req.BasePrice,
		Image:     req.Image,
	})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
// @Summary Delete a product
// @Description Removes the product and its inventory record (admin session required)
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [delete]
func (h *ShopHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.cmd.DeleteProduct.Handle(r.Context(), command.DeleteProductCommand{ID: mux.Vars(r)["id"]}); err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product deleted successfully"})
}

// GetStats handles GET /api/stats
// @Summary Dashboard statistics
// @Tags Products
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/stats [get]
func (h *ShopHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.qry.Stats.Handle(r.Context())
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// ListInventory handles GET /api/inventory
// @Summary List inventory
// @Tags Inventory
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/inventory [get]
func (h *ShopHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	records, err := h.qry.ListInventory.Handle(r.Context())
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: records})
}

// SetStock handles PUT /api/inventory/{product_id}/stock
// @Summary Set stock
// @Description Administrative stock override
// @Tags Inventory
// @Accept json
// @Produce json
// @Param product_id path string true "Product ID"
// @Param request body object{quantity=int,restockDate=string} true "Stock data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{product_id}/stock [put]
func (h *ShopHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity    *int    `json:"quantity"`
		RestockDate *string `json:"restockDate"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	record, err := h.cmd.SetStock.Handle(r.Context(), command.SetStockCommand{
		ProductID:   mux.Vars(r)["product_id"],
		Quantity:    *req.Quantity,
		RestockDate: req.RestockDate,
	})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock updated successfully",
		Data:    record,
	})
}

// ListCategories handles GET /api/categories
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/categories [get]
func (h *ShopHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.qry.ListCategories.Handle(r.Context())
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: categories})
}

// AddCategory handles POST /api/categories
// @Summary Add a category
// @Description Prefix must be 2-4 letters and unique
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body object{name=string,prefix=string} true "Category data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/categories [post]
func (h *ShopHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Prefix string `json:"prefix"`
	}
	if !decode(w, r, &req) {
		return
	}

	category, err := h.cmd.AddCategory.Handle(r.Context(), command.AddCategoryCommand{Name: req.Name, Prefix: req.Prefix})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// DeleteCategory handles DELETE /api/categories/{id}
// @Summary Delete a category
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} object{success=bool,message=string}
// @Router /api/categories/{id} [delete]
func (h *ShopHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.cmd.DelCategory.Handle(r.Context(), command.DeleteCategoryCommand{ID: mux.Vars(r)["id"]}); err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Category deleted successfully"})
}
