package services

import (
	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/app/repositories"
	"github.com/shashiranjanraj/inkstore/pkg/auth"
	"github.com/shashiranjanraj/inkstore/pkg/collection"
)

// Library is a user's owned products partitioned for display.
type Library struct {
	Books   []models.Product `json:"books"`
	Courses []models.Product `json:"courses"`
}

// LibraryService resolves which products a user owns from their completed
// orders.
type LibraryService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
}

func NewLibraryService() *LibraryService {
	return &LibraryService{
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
	}
}

// Library returns the principal's owned products split into books and
// courses, each newest first. A user with no completed orders gets two
// empty slices. A product deleted after purchase is silently omitted;
// the order record keeps its snapshot, but there is nothing left to show.
func (s *LibraryService) Library(p auth.Principal) (Library, error) {
	orders, err := s.orders.CompletedForUser(p.UserID)
	if err != nil {
		return Library{}, err
	}

	seen := make(map[uint]bool)
	var ids []uint
	for _, order := range orders {
		for _, item := range order.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}

	products, err := s.products.FindByIDs(ids)
	if err != nil {
		return Library{}, err
	}

	lib := Library{
		Books:   collection.Filter(products, models.Product.IsBook),
		Courses: collection.Reject(products, models.Product.IsBook),
	}
	if lib.Books == nil {
		lib.Books = []models.Product{}
	}
	if lib.Courses == nil {
		lib.Courses = []models.Product{}
	}
	return lib, nil
}

// Owns reports whether the principal holds an entitlement to the product.
func (s *LibraryService) Owns(p auth.Principal, productID uint) (bool, error) {
	return s.orders.HasEntitlement(p.UserID, productID)
}
