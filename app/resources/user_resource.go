package resources

import (
	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/pkg/resource"
)

type UserResource struct {
	resource.Base
}

func (r *UserResource) ToArray(v interface{}) resource.Map {
	u := v.(models.User)
	return resource.Map{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"role":      u.Role,
		"avatar":    u.Avatar,
		"createdAt": u.CreatedAt,
	}
}
