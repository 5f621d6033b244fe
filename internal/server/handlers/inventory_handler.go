package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/catalog"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/inventory"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/service/movements"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/service/monitor"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/service/summary"
)

const dateLayout = "2006-01-02"

// InventoryHandler exposes the stock operations over HTTP.
type InventoryHandler struct {
	ledger     *inventory.Ledger
	movements  *movements.Service
	monitor    *monitor.Service
	summaries  *summary.Service
	thresholds *catalog.ThresholdStore
	logger     *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(ledger *inventory.Ledger, mov *movements.Service, mon *monitor.Service, sum *summary.Service, thresholds *catalog.ThresholdStore, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{
		ledger:     ledger,
		movements:  mov,
		monitor:    mon,
		summaries:  sum,
		thresholds: thresholds,
		logger:     logger,
	}
}

// respondError maps domain errors onto HTTP statuses.
func (h *InventoryHandler) respondError(c *gin.Context, err error) {
	var (
		insufficient *inventory.InsufficientStockError
		invalidQty   *inventory.InvalidQuantityError
		mismatch     *inventory.RestorationMismatchError
		noProduct    *inventory.UnknownProductError
		noOutlet     *inventory.UnknownOutletError
		noMenuItem   *inventory.UnknownMenuItemError
	)

	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient_stock", "detail": insufficient})
	case errors.As(err, &mismatch):
		c.JSON(http.StatusConflict, gin.H{"error": "restoration_mismatch", "detail": mismatch})
	case errors.As(err, &invalidQty):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_quantity", "detail": invalidQty})
	case errors.As(err, &noProduct):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_product", "detail": noProduct})
	case errors.As(err, &noOutlet):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_outlet", "detail": noOutlet})
	case errors.As(err, &noMenuItem):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_menu_item", "detail": noMenuItem})
	case errors.Is(err, movements.ErrUnknownOrder):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_order"})
	default:
		h.logger.Error("operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}

type receiveRequest struct {
	ProductID  string   `json:"product_id" binding:"required"`
	OutletID   string   `json:"outlet_id" binding:"required"`
	Quantity   float64  `json:"quantity" binding:"required"`
	Price      *float64 `json:"price"`
	Supplier   string   `json:"supplier"`
	ExpiryDate *string  `json:"expiry_date"`
}

// Receive books incoming goods.
func (h *InventoryHandler) Receive(c *gin.Context) {
	var req receiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var expiry *time.Time
	if req.ExpiryDate != nil {
		parsed, err := time.Parse(dateLayout, *req.ExpiryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expiry_date must be YYYY-MM-DD"})
			return
		}
		expiry = &parsed
	}

	receipt, err := h.movements.Receive(c.Request.Context(), req.ProductID, req.OutletID, req.Quantity, req.Price, req.Supplier, expiry)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

type orderRequest struct {
	OutletID    string             `json:"outlet_id" binding:"required"`
	Source      string             `json:"source"`
	Items       []models.OrderItem `json:"items" binding:"required"`
	TotalAmount float64            `json:"total_amount"`
}

// CreateOrder fulfills a manual order, deducting ingredient stock.
func (h *InventoryHandler) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fulfilled, err := h.movements.FulfillOrder(c.Request.Context(), models.ManualOrder{
		OutletID:    req.OutletID,
		Source:      req.Source,
		Items:       req.Items,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fulfilled)
}

// DeleteOrder reverses a fulfilled order, restoring its deductions exactly.
func (h *InventoryHandler) DeleteOrder(c *gin.Context) {
	if err := h.movements.ReverseOrder(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type transferRequest struct {
	FromOutletID  string   `json:"from_outlet_id" binding:"required"`
	ToOutletID    string   `json:"to_outlet_id" binding:"required"`
	ProductID     string   `json:"product_id" binding:"required"`
	Quantity      float64  `json:"quantity" binding:"required"`
	TransferPrice *float64 `json:"transfer_price"`
}

// Transfer moves stock between outlets.
func (h *InventoryHandler) Transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	transfer, err := h.movements.Transfer(c.Request.Context(), req.FromOutletID, req.ToOutletID, req.ProductID, req.Quantity, req.TransferPrice)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transfer)
}

type wastageRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	OutletID  string  `json:"outlet_id" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
	Reason    string  `json:"reason" binding:"required"`
}

// RecordWastage writes off stock.
func (h *InventoryHandler) RecordWastage(c *gin.Context) {
	var req wastageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.movements.RecordWastage(c.Request.Context(), req.ProductID, req.OutletID, req.Quantity, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

type auditRequest struct {
	ProductID      string  `json:"product_id" binding:"required"`
	OutletID       string  `json:"outlet_id" binding:"required"`
	ActualQuantity float64 `json:"actual_quantity"`
	CountedBy      string  `json:"counted_by"`
}

// RecordAudit snapshots system stock against a physical count.
func (h *InventoryHandler) RecordAudit(c *gin.Context) {
	var req auditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	audit, err := h.movements.Audit(c.Request.Context(), req.ProductID, req.OutletID, req.ActualQuantity, req.CountedBy)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, audit)
}

// ApplyAuditCorrection reconciles the ledger to a recorded audit.
func (h *InventoryHandler) ApplyAuditCorrection(c *gin.Context) {
	audit, ok := h.movements.AuditByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_audit"})
		return
	}

	if err := h.movements.ApplyAuditCorrection(c.Request.Context(), audit); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": audit.Difference})
}

// GetStock reports the aggregate quantity for a (product, outlet) pair.
func (h *InventoryHandler) GetStock(c *gin.Context) {
	productID := c.Query("product_id")
	outletID := c.Query("outlet_id")
	if productID == "" || outletID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id and outlet_id are required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": productID,
		"outlet_id":  outletID,
		"quantity":   h.ledger.GetStock(productID, outletID),
	})
}

// ListBatches returns the non-empty batches, optionally per outlet.
func (h *InventoryHandler) ListBatches(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.Batches(c.Query("outlet_id")))
}

// LowStockAlerts returns the active low-stock alerts.
func (h *InventoryHandler) LowStockAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.CheckLowStock(c.Query("outlet_id")))
}

// ExpiryReport classifies expiry-dated batches.
func (h *InventoryHandler) ExpiryReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.ScanExpiry(c.Query("outlet_id")))
}

// DailySummary generates the snapshot for an outlet and date.
func (h *InventoryHandler) DailySummary(c *gin.Context) {
	day, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	sum, err := h.summaries.GenerateSummary(c.Request.Context(), c.Param("outletID"), day)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

type thresholdRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	OutletID  string  `json:"outlet_id" binding:"required"`
	Threshold float64 `json:"threshold"`
}

// SetThreshold registers or updates a low-stock threshold.
func (h *InventoryHandler) SetThreshold(c *gin.Context) {
	var req thresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Threshold < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must not be negative"})
		return
	}

	h.thresholds.Set(req.ProductID, req.OutletID, req.Threshold)
	c.Status(http.StatusNoContent)
}

// DeleteThreshold removes a registration.
func (h *InventoryHandler) DeleteThreshold(c *gin.Context) {
	productID := c.Query("product_id")
	outletID := c.Query("outlet_id")
	if productID == "" || outletID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id and outlet_id are required"})
		return
	}

	h.thresholds.Delete(productID, outletID)
	c.Status(http.StatusNoContent)
}
