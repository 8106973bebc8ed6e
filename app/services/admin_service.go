package services

import (
	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/app/repositories"
	"github.com/shashiranjanraj/inkstore/pkg/auth"
)

// DashboardStats is the back-office summary. Every figure is recomputed
// from the store on each call; nothing is cached or maintained
// incrementally.
type DashboardStats struct {
	ProductCount  int64   `json:"productCount"`
	UserCount     int64   `json:"userCount"`
	OrderCount    int64   `json:"orderCount"`
	TotalRevenue  float64 `json:"totalRevenue"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

// AdminService serves the back-office aggregations and listings. Every
// method checks the principal itself so authorization is testable without
// the HTTP middleware in front of it.
type AdminService struct {
	products *repositories.ProductRepository
	users    *repositories.UserRepository
	orders   *repositories.OrderRepository
}

func NewAdminService() *AdminService {
	return &AdminService{
		products: repositories.NewProductRepository(),
		users:    repositories.NewUserRepository(),
		orders:   repositories.NewOrderRepository(),
	}
}

// Dashboard computes the collection counts and completed-order revenue.
// Revenue is 0, not null, when no completed orders exist; pending and
// failed orders never count towards it.
func (s *AdminService) Dashboard(p auth.Principal) (DashboardStats, error) {
	if !p.IsAdmin() {
		return DashboardStats{}, ErrForbidden
	}

	stats := DashboardStats{}

	var err error
	if stats.ProductCount, err = s.products.Count(); err != nil {
		return DashboardStats{}, err
	}
	if stats.UserCount, err = s.users.Count(); err != nil {
		return DashboardStats{}, err
	}
	if stats.OrderCount, err = s.orders.Count(); err != nil {
		return DashboardStats{}, err
	}
	if stats.TotalRevenue, err = s.orders.CompletedRevenue(); err != nil {
		return DashboardStats{}, err
	}

	if stats.OrderCount > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / float64(stats.OrderCount)
	}

	return stats, nil
}

// RecentProducts lists the most recently created products (drafts included).
func (s *AdminService) RecentProducts(p auth.Principal, limit int) ([]models.Product, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	if limit < 1 {
		limit = 5
	}
	return s.products.Recent(limit)
}

// ListUsers returns every user. Password hashes never serialise (json:"-").
func (s *AdminService) ListUsers(p auth.Principal, page, limit int) ([]models.User, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	users, _, err := s.users.All(page, limit)
	return users, err
}

// ListOrders returns every order with the owning user resolved.
func (s *AdminService) ListOrders(p auth.Principal) ([]models.Order, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.orders.AllWithUsers()
}
