package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bottlerun/bottlerun/internal/client/api"
	"github.com/bottlerun/bottlerun/internal/client/models"
	"github.com/bottlerun/bottlerun/internal/client/repositories/cart"
	"github.com/bottlerun/bottlerun/internal/common"
	"github.com/bottlerun/bottlerun/internal/dbx"
	"github.com/bottlerun/bottlerun/internal/logging"
)

// ClearPolicy controls when Checkout removes submitted lines from the
// local cart.
type ClearPolicy string

const (
	// ClearAlways removes the submitted lines whether or not the remote
	// order call succeeded. It prioritizes never double-submitting an
	// order over cart durability on failure.
	ClearAlways ClearPolicy = "always"

	// ClearOnSuccess removes lines only after a confirmed order, leaving
	// them in place for retry otherwise.
	ClearOnSuccess ClearPolicy = "on-success"
)

// CheckoutRequest selects local cart lines and carries the order fields
// the backend needs alongside them.
type CheckoutRequest struct {
	UserID          string
	ProductIDs      []string
	ShippingAddress models.Address
	PaymentMethod   string
	ShippingPrice   float64
	ProofOfPayment  string
}

// CartService keeps the local cart consistent and hands it to the order
// flow at checkout. The cart is offline-first: nothing is sent to the
// server until an order is placed.
type CartService interface {
	// Add puts one unit of the product into the user's cart, merging with
	// an existing line for the same product.
	Add(ctx context.Context, userID string, product models.Product) (*models.CartItem, error)

	// Fetch returns the user's cart lines, hydrating UI state after restart.
	Fetch(ctx context.Context, userID string) ([]models.CartItem, error)

	// UpdateQuantity commits a buffered quantity edit.
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error

	// Remove deletes one line. Idempotent.
	Remove(ctx context.Context, userID, productID string) error

	// Checkout submits the selected lines as a remote order, then clears
	// them locally according to the configured ClearPolicy.
	Checkout(ctx context.Context, req CheckoutRequest) (*api.OrderResult, error)
}

type cartService struct {
	api    api.Client
	db     *sql.DB
	log    logging.Logger
	policy ClearPolicy

	// Cart mutations for one user are serialized so rapid interleaved
	// taps cannot lose updates against each other.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCartService constructs a CartService with the given checkout clear
// policy. An empty policy defaults to ClearAlways.
func NewCartService(apiClient api.Client, db *sql.DB, policy ClearPolicy, log logging.Logger) CartService {
	if policy == "" {
		policy = ClearAlways
	}
	return &cartService{
		api:    apiClient,
		db:     db,
		log:    log,
		policy: policy,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *cartService) lockUser(userID string) func() {
	s.mu.Lock()
	m, ok := s.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[userID] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (s *cartService) Add(ctx context.Context, userID string, product models.Product) (*models.CartItem, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	item := &models.CartItem{
		UserID:    userID,
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  models.MinCartQuantity,
		Price:     product.Price,
	}
	if err := cart.NewSQLiteRepository(s.db).Add(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.log.Debug(ctx, "cart item added", "user_id", userID, "product_id", product.ID)
	return item, nil
}

func (s *cartService) Fetch(ctx context.Context, userID string) ([]models.CartItem, error) {
	items, err := cart.NewSQLiteRepository(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	return items, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	unlock := s.lockUser(userID)
	defer unlock()

	if err := cart.NewSQLiteRepository(s.db).UpdateQuantity(ctx, userID, productID, quantity); err != nil {
		return fmt.Errorf("failed to update quantity: %w", err)
	}
	return nil
}

func (s *cartService) Remove(ctx context.Context, userID, productID string) error {
	unlock := s.lockUser(userID)
	defer unlock()

	if err := cart.NewSQLiteRepository(s.db).Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("failed to remove from cart: %w", err)
	}
	return nil
}

func (s *cartService) Checkout(ctx context.Context, req CheckoutRequest) (*api.OrderResult, error) {
	unlock := s.lockUser(req.UserID)
	defer unlock()

	repo := cart.NewSQLiteRepository(s.db)
	items, err := repo.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart for checkout: %w", err)
	}

	selected := selectItems(items, req.ProductIDs)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no cart items to checkout: %w", common.ErrNotFound)
	}

	orderReq := buildOrderRequest(req, selected)
	result, remoteErr := s.api.CreateOrder(ctx, orderReq)

	if s.policy == ClearAlways || remoteErr == nil {
		ids := make([]string, len(selected))
		for i, it := range selected {
			ids[i] = it.ProductID
		}
		clearErr := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return cart.NewSQLiteRepository(tx).RemoveAll(ctx, req.UserID, ids)
		})
		if clearErr != nil {
			s.log.Error(ctx, "failed to clear cart after checkout",
				"user_id", req.UserID, "error", clearErr)
			if remoteErr == nil {
				return result, fmt.Errorf("order placed but cart not cleared: %w", clearErr)
			}
		}
	}

	if remoteErr != nil {
		return nil, remoteErr
	}

	s.log.Info(ctx, "order placed", "user_id", req.UserID,
		"order_id", result.ID, "items", len(selected))
	return result, nil
}

// selectItems filters cart lines down to the requested product ids,
// preserving cart order.
func selectItems(items []models.CartItem, productIDs []string) []models.CartItem {
	wanted := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}

	var selected []models.CartItem
	for _, it := range items {
		if _, ok := wanted[it.ProductID]; ok {
			selected = append(selected, it)
		}
	}
	return selected
}

func buildOrderRequest(req CheckoutRequest, selected []models.CartItem) *api.OrderRequest {
	orderItems := make([]api.OrderItem, len(selected))
	total := req.ShippingPrice
	for i, it := range selected {
		orderItems[i] = api.OrderItem{
			Product:  it.ProductID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		}
		total += it.Subtotal()
	}

	return &api.OrderRequest{
		Reference:       uuid.NewString(),
		UserID:          req.UserID,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		OrderItems:      orderItems,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      total,
		ProofOfPayment:  req.ProofOfPayment,
	}
}
