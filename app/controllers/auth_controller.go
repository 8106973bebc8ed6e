package controllers

import (
	"github.com/shashiranjanraj/inkstore/app/resources"
	"github.com/shashiranjanraj/inkstore/app/services"
	"github.com/shashiranjanraj/inkstore/pkg/ctx"
	"github.com/shashiranjanraj/inkstore/pkg/resource"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{auth: services.NewAuthService()}
}

// Register handles POST /api/register
func (ctl *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}
	user, err := ctl.auth.Register(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(map[string]any{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// Login handles POST /api/login
func (ctl *AuthController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.BindJSON(&in) {
		return
	}
	user, tokens, err := ctl.auth.Login(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]any{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"user": map[string]any{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Me handles GET /api/me
func (ctl *AuthController) Me(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	user, err := ctl.auth.Me(p)
	if err != nil {
		fail(c, err)
		return
	}
	resource.New(&resources.UserResource{}, user).Respond(c.W)
}
