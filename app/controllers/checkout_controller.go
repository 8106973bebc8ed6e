package controllers

import (
	"github.com/shashiranjanraj/inkstore/app/resources"
	"github.com/shashiranjanraj/inkstore/app/services"
	"github.com/shashiranjanraj/inkstore/pkg/ctx"
)

type CheckoutController struct {
	checkout *services.CheckoutService
}

func NewCheckoutController() *CheckoutController {
	return &CheckoutController{checkout: services.NewCheckoutService()}
}

type checkoutInput struct {
	ProductID uint `json:"productId" validate:"required"`
}

// Create handles POST /api/checkout
func (ctl *CheckoutController) Create(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var in checkoutInput
	if !c.BindJSON(&in) {
		return
	}
	order, err := ctl.checkout.Purchase(p, in.ProductID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created((&resources.OrderResource{}).ToArray(order))
}
