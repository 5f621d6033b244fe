package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/catalog"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/repository/memory"
)

// CatalogHandler manages the reference data the inventory core reads, plus
// the collaborator records feeding the daily summary.
type CatalogHandler struct {
	store   *catalog.Store
	pos     *memory.PurchaseOrderStore
	hygiene *memory.HygieneStore
	logger  *zap.Logger
}

// NewCatalogHandler constructs the catalog HTTP adapter.
func NewCatalogHandler(store *catalog.Store, pos *memory.PurchaseOrderStore, hygiene *memory.HygieneStore, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{store: store, pos: pos, hygiene: hygiene, logger: logger}
}

type productRequest struct {
	ID                string      `json:"id"`
	Name              string      `json:"name" binding:"required"`
	Category          string      `json:"category"`
	Unit              models.Unit `json:"unit" binding:"required"`
	IsPerishable      bool        `json:"is_perishable"`
	MinStockThreshold float64     `json:"min_stock_threshold"`
	AutoReorderQty    float64     `json:"auto_reorder_quantity"`
}

var validUnits = map[models.Unit]bool{
	models.UnitKilogram: true, models.UnitGram: true,
	models.UnitLiter: true, models.UnitMilliliter: true,
	models.UnitPieces: true,
}

// CreateProduct registers a product in the catalog.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !validUnits[req.Unit] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit must be one of kg, g, l, ml, pieces"})
		return
	}

	product := models.Product{
		ID:                req.ID,
		Name:              req.Name,
		Category:          req.Category,
		Unit:              req.Unit,
		IsPerishable:      req.IsPerishable,
		MinStockThreshold: req.MinStockThreshold,
		AutoReorderQty:    req.AutoReorderQty,
		CreatedAt:         time.Now(),
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	h.store.PutProduct(product)
	c.JSON(http.StatusCreated, product)
}

// ListProducts returns the product catalog.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Products())
}

// CreateMenuItem registers a dish and its ingredient expansion.
func (h *CatalogHandler) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	for _, ing := range item.Ingredients {
		if _, ok := h.store.Product(ing.ProductID); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient references unknown product", "product_id": ing.ProductID})
			return
		}
	}

	h.store.PutMenuItem(item)
	c.JSON(http.StatusCreated, item)
}

// CreateOutlet registers an outlet.
func (h *CatalogHandler) CreateOutlet(c *gin.Context) {
	var outlet models.Outlet
	if err := c.ShouldBindJSON(&outlet); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if outlet.ID == "" {
		outlet.ID = uuid.NewString()
	}

	h.store.PutOutlet(outlet)
	c.JSON(http.StatusCreated, outlet)
}

// ListOutlets returns the registered outlets.
func (h *CatalogHandler) ListOutlets(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Outlets())
}

type purchaseOrderRequest struct {
	OutletID  string  `json:"outlet_id" binding:"required"`
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
}

// CreatePurchaseOrder records a pending purchase order.
func (h *CatalogHandler) CreatePurchaseOrder(c *gin.Context) {
	var req purchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	po := models.PurchaseOrder{
		ID:        uuid.NewString(),
		OutletID:  req.OutletID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Status:    models.POPending,
		CreatedAt: time.Now(),
	}
	h.pos.Put(po)
	c.JSON(http.StatusCreated, po)
}

type poStatusRequest struct {
	Status models.PurchaseOrderStatus `json:"status" binding:"required"`
}

// UpdatePurchaseOrderStatus moves a purchase order through its lifecycle.
func (h *CatalogHandler) UpdatePurchaseOrderStatus(c *gin.Context) {
	var req poStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	switch req.Status {
	case models.POPending, models.POApproved, models.POReceived, models.POCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	h.pos.SetStatus(c.Param("id"), req.Status)
	c.Status(http.StatusNoContent)
}

type hygieneLogRequest struct {
	OutletID string               `json:"outlet_id" binding:"required"`
	Status   models.HygieneStatus `json:"status" binding:"required"`
	Notes    string               `json:"notes"`
}

// CreateHygieneLog records a hygiene checklist entry.
func (h *CatalogHandler) CreateHygieneLog(c *gin.Context) {
	var req hygieneLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	switch req.Status {
	case models.HygienePending, models.HygienePassed, models.HygieneFailed:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	log := models.HygieneLog{
		ID:        uuid.NewString(),
		OutletID:  req.OutletID,
		Status:    req.Status,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}
	h.hygiene.Append(log)
	c.JSON(http.StatusCreated, log)
}
