package inventory

import (
	"errors"
	"fmt"
)

// InsufficientStockError is returned when a deduction-based operation requests
// more than the outlet holds. The operation aborts without mutating anything.
type InsufficientStockError struct {
	ProductID string  `json:"product_id"`
	OutletID  string  `json:"outlet_id"`
	Available float64 `json:"available"`
	Requested float64 `json:"requested"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock of %s at %s: available %.3f, requested %.3f",
		e.ProductID, e.OutletID, e.Available, e.Requested)
}

// InvalidQuantityError flags a zero or negative quantity on a mutating call.
type InvalidQuantityError struct {
	Quantity float64 `json:"quantity"`
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %.3f: must be greater than zero", e.Quantity)
}

// RestorationMismatchError indicates that a deduction plan no longer maps onto
// a consistent ledger state. It is surfaced rather than swallowed because a
// silent partial restore would break quantity conservation.
type RestorationMismatchError struct {
	BatchID string `json:"batch_id"`
	Reason  string `json:"reason"`
}

func (e *RestorationMismatchError) Error() string {
	return fmt.Sprintf("restoration mismatch on batch %s: %s", e.BatchID, e.Reason)
}

// UnknownProductError signals a referential lookup failure before any mutation.
type UnknownProductError struct {
	ProductID string `json:"product_id"`
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %s", e.ProductID)
}

// UnknownOutletError signals a referential lookup failure before any mutation.
type UnknownOutletError struct {
	OutletID string `json:"outlet_id"`
}

func (e *UnknownOutletError) Error() string {
	return fmt.Sprintf("unknown outlet %s", e.OutletID)
}

// UnknownMenuItemError signals an order line referencing a missing menu item.
type UnknownMenuItemError struct {
	MenuItemID string `json:"menu_item_id"`
}

func (e *UnknownMenuItemError) Error() string {
	return fmt.Sprintf("unknown menu item %s", e.MenuItemID)
}

// IsInsufficientStock reports whether err wraps an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}
