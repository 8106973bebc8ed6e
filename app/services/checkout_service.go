package services

import (
	"errors"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/app/repositories"
	"github.com/shashiranjanraj/inkstore/pkg/auth"
	"github.com/shashiranjanraj/inkstore/pkg/container"
	"github.com/shashiranjanraj/inkstore/pkg/event"
	"github.com/shashiranjanraj/inkstore/pkg/logger"
	"github.com/shashiranjanraj/inkstore/pkg/metrics"
	"gorm.io/gorm"
)

// EventOrderCompleted is fired with the persisted *models.Order after every
// successful checkout.
const EventOrderCompleted = "order.completed"

// checkoutStripes is the size of the striped lock table guarding the
// check-then-insert window per (user, product).
const checkoutStripes = 64

// CheckoutService decides whether a purchase is allowed and records it.
//
// The one real invariant of the store lives here: a user holds at most one
// completed order entitling them to a given product. It is enforced twice:
// a striped mutex serialises concurrent checkouts for the same (user,
// product) in-process, and the entitlements table's composite unique index
// catches anything that still slips through (multiple replicas, retries).
type CheckoutService struct {
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
	locks    [checkoutStripes]sync.Mutex
}

// NewCheckoutService returns the process-wide checkout service. It is a
// container singleton because the striped lock table only serialises
// checkouts if every caller shares it.
func NewCheckoutService() *CheckoutService {
	return container.MakeOrBind("services.checkout", func() interface{} {
		return &CheckoutService{
			products: repositories.NewProductRepository(),
			orders:   repositories.NewOrderRepository(),
		}
	}).(*CheckoutService)
}

// Purchase records a completed single-item order for the principal.
//
// There is no payment gateway: the order is written with status completed
// directly. Returns ErrNotFound for an unknown product and ErrAlreadyOwned
// for a duplicate purchase.
func (s *CheckoutService) Purchase(p auth.Principal, productID uint) (models.Order, error) {
	lock := s.lockFor(p.UserID, productID)
	lock.Lock()
	defer lock.Unlock()

	product, err := s.products.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	owned, err := s.orders.HasEntitlement(p.UserID, productID)
	if err != nil {
		return models.Order{}, err
	}
	if owned {
		return models.Order{}, ErrAlreadyOwned
	}

	order := models.Order{
		Reference: uuid.NewString(),
		UserID:    p.UserID,
		Items: []models.OrderItem{{
			ProductID:   product.ID,
			Title:       product.Title,
			Price:       product.Price,
			ProductType: product.ProductType,
		}},
		TotalAmount: product.Price,
		Status:      models.OrderCompleted,
	}
	ent := models.Entitlement{UserID: p.UserID, ProductID: productID}

	if err := s.orders.CreateCompleted(&order, &ent); err != nil {
		// The race loser hits the unique index instead of the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Order{}, ErrAlreadyOwned
		}
		return models.Order{}, err
	}

	metrics.OrdersCompleted.Inc()
	metrics.Revenue.Add(order.TotalAmount)
	event.Fire(EventOrderCompleted, &order)

	logger.Info("order completed",
		"reference", order.Reference,
		"user_id", p.UserID,
		"product_id", productID,
		"amount", order.TotalAmount,
	)

	return order, nil
}

func (s *CheckoutService) lockFor(userID, productID uint) *sync.Mutex {
	h := fnv.New32a()
	var buf [8]byte
	buf[0] = byte(userID)
	buf[1] = byte(userID >> 8)
	buf[2] = byte(userID >> 16)
	buf[3] = byte(userID >> 24)
	buf[4] = byte(productID)
	buf[5] = byte(productID >> 8)
	buf[6] = byte(productID >> 16)
	buf[7] = byte(productID >> 24)
	h.Write(buf[:])
	return &s.locks[h.Sum32()%checkoutStripes]
}
