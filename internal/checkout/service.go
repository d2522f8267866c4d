package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modabuy/storefront-backend/internal/cart"
	"github.com/modabuy/storefront-backend/internal/catalog"
	"github.com/modabuy/storefront-backend/internal/orders"
	"github.com/modabuy/storefront-backend/models"
	"github.com/modabuy/storefront-backend/pkg/db"
	"github.com/modabuy/storefront-backend/pkg/enums"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
	"github.com/modabuy/storefront-backend/pkg/logger"
	"github.com/modabuy/storefront-backend/pkg/outbox"
)

// ShippingInfo is the buyer's delivery profile as shown in the preview and
// snapshotted onto the order at confirm time.
type ShippingInfo struct {
	RecipientName   string `json:"recipient_name"`
	ContactNumber   string `json:"contact_number"`
	DeliveryAddress string `json:"delivery_address"`
}

// Preview is the checkout summary. It is read-only: previewing reserves
// nothing and generates no order number.
type Preview struct {
	UserID       uuid.UUID       `json:"user_id"`
	ShippingInfo ShippingInfo    `json:"shipping_info"`
	Items        []cart.ItemView `json:"items"`
	TotalPrice   int             `json:"total_price"`
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type cartViewer interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]cart.ItemView, error)
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type Service interface {
	GetCheckout(ctx context.Context, userID uuid.UUID) (*Preview, error)
	CreateOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error)
}

type service struct {
	tx       txRunner
	users    userFinder
	cartView cartViewer
	carts    *cart.Repository
	products *catalog.Repository
	orders   *orders.Repository
	events   eventEmitter
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(
	tx txRunner,
	users userFinder,
	cartView cartViewer,
	carts *cart.Repository,
	products *catalog.Repository,
	ordersRepo *orders.Repository,
	events eventEmitter,
	logg *logger.Logger,
) Service {
	if tx == nil {
		panic("checkout: tx runner is required")
	}
	if users == nil {
		panic("checkout: user finder is required")
	}
	if cartView == nil {
		panic("checkout: cart viewer is required")
	}
	if carts == nil || products == nil || ordersRepo == nil {
		panic("checkout: repositories are required")
	}
	if events == nil {
		panic("checkout: event emitter is required")
	}
	if logg == nil {
		panic("checkout: logger is required")
	}
	return &service{
		tx:       tx,
		users:    users,
		cartView: cartView,
		carts:    carts,
		products: products,
		orders:   ordersRepo,
		events:   events,
		logg:     logg,
		now:      time.Now,
	}
}

// GetCheckout assembles the preview: shipping profile plus the enriched cart
// with discounted-price-precedence totals. Calling it twice without touching
// the cart yields the same result.
func (s *service) GetCheckout(ctx context.Context, userID uuid.UUID) (*Preview, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartView.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	total := 0
	for _, item := range items {
		total += item.Price * item.Quantity
	}

	return &Preview{
		UserID: user.ID,
		ShippingInfo: ShippingInfo{
			RecipientName:   user.Name,
			ContactNumber:   user.PhoneNumber,
			DeliveryAddress: user.Address,
		},
		Items:      items,
		TotalPrice: total,
	}, nil
}

// CreateOrder confirms the cart in a single transaction: lock cart lines,
// snapshot prices, insert the order and its items, consume stock, clear the
// cart and record the outbox events. Everything commits or nothing does.
// Transient failures (including an order number collision) are retried once.
func (s *service) CreateOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	// The confirm must run to completion even if the client goes away.
	ctx = context.WithoutCancel(ctx)

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	order, err := s.confirm(ctx, user)
	if err != nil && s.shouldRetry(err) {
		s.logg.Warn(ctx, "order confirm failed, retrying once: "+err.Error())
		order, err = s.confirm(ctx, user)
	}
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_no":    order.OrderNo,
		"total_price": order.TotalPrice,
	}), "order confirmed")
	return order, nil
}

func (s *service) confirm(ctx context.Context, user *models.User) (*models.Order, error) {
	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		products := s.products.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)

		lines, err := carts.ListByUserForUpdate(ctx, user.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		ids := make([]uuid.UUID, len(lines))
		for i, line := range lines {
			ids[i] = line.ProductID
		}
		productsByID, err := products.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}

		total := 0
		items := make([]models.OrderItem, 0, len(lines))
		eventItems := make([]outbox.OrderCreatedPayloadItem, 0, len(lines))
		for _, line := range lines {
			product, ok := productsByID[line.ProductID]
			if !ok || !product.IsActive {
				return pkgerrors.Newf(pkgerrors.CodeConflict,
					"product %s is no longer available", line.ProductID)
			}
			unit := product.UnitPrice()
			total += unit * line.Quantity
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     unit,
			})
			eventItems = append(eventItems, outbox.OrderCreatedPayloadItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     unit,
			})
		}

		created := &models.Order{
			OrderNo:         newOrderNo(s.now(), user.ID),
			UserID:          user.ID,
			RecipientName:   user.Name,
			ContactNumber:   user.PhoneNumber,
			DeliveryAddress: user.Address,
			TotalPrice:      total,
			Status:          enums.OrderStatusPending,
		}
		if err := ordersRepo.CreateOrder(ctx, created); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = created.ID
		}
		if err := ordersRepo.CreateOrderItems(ctx, items); err != nil {
			return err
		}
		created.Items = items

		for _, line := range lines {
			remaining, soldOut, err := products.ConsumeStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if err := s.events.Emit(ctx, tx, outbox.DomainEvent{
				AggregateType: enums.AggregateProduct,
				AggregateID:   line.ProductID,
				EventType:     enums.EventStockConsumed,
				Payload: outbox.StockConsumedPayload{
					ProductID:      line.ProductID,
					Quantity:       line.Quantity,
					StockRemaining: remaining,
					SoldOut:        soldOut,
				},
			}); err != nil {
				return err
			}
		}

		if err := carts.Clear(ctx, user.ID); err != nil {
			return err
		}

		if err := s.events.Emit(ctx, tx, outbox.DomainEvent{
			AggregateType: enums.AggregateOrder,
			AggregateID:   created.ID,
			EventType:     enums.EventOrderCreated,
			Payload: outbox.OrderCreatedPayload{
				OrderID:    created.ID,
				OrderNo:    created.OrderNo,
				UserID:     user.ID,
				TotalPrice: total,
				Items:      eventItems,
			},
		}); err != nil {
			return err
		}

		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// shouldRetry allows exactly one more attempt for order number collisions and
// transient failures. Coded business errors (empty cart, unavailable product,
// insufficient stock) are final.
func (s *service) shouldRetry(err error) bool {
	if db.IsUniqueViolation(err, "ux_orders_order_no") {
		return true
	}
	if coded := pkgerrors.As(err); coded != nil {
		return pkgerrors.MetadataFor(coded.Code()).Retryable
	}
	// Uncoded errors come from the driver; treat as transient.
	return true
}
