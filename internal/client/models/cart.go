package models

// Quantity bounds for a single cart line. The UI enforces these before
// calling the store; repositories re-validate defensively.
const (
	MinCartQuantity = 1
	MaxCartQuantity = 24
)

// Product is the subset of a catalog product a cart line snapshots.
type Product struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CartItem is one local cart line: a product and quantity the user intends
// to purchase. Cart lines live only on-device until checkout.
type CartItem struct {
	UserID    string
	ProductID string
	Name      string
	Quantity  int
	Price     float64
}

// Subtotal is the line price times quantity.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// ValidQuantity reports whether q is within the allowed per-line bounds.
func ValidQuantity(q int) bool {
	return q >= MinCartQuantity && q <= MaxCartQuantity
}
