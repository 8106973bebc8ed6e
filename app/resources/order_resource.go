package resources

import (
	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/pkg/resource"
)

// OrderResource renders an order with its snapshot items. The item fields
// come from the order itself, not the product table, so they stay stable
// after catalog edits.
type OrderResource struct {
	resource.Base

	// WithUser includes the resolved buyer, for the back-office listing.
	WithUser bool
}

func (r *OrderResource) ToArray(v interface{}) resource.Map {
	o := v.(models.Order)

	items := make([]resource.Map, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, resource.Map{
			"productId":   item.ProductID,
			"title":       item.Title,
			"price":       item.Price,
			"productType": item.ProductType,
		})
	}

	out := resource.Map{
		"id":          o.ID,
		"reference":   o.Reference,
		"status":      o.Status,
		"totalAmount": o.TotalAmount,
		"items":       items,
		"createdAt":   o.CreatedAt,
	}
	if r.WithUser {
		out["user"] = resource.Map{
			"id":    o.User.ID,
			"name":  o.User.Name,
			"email": o.User.Email,
		}
	}
	return out
}
