package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/n4mp3un9/car-rental-sub001/entity"
)

const principalKey = "principal"

// Principal is the authenticated caller attached by the auth middleware.
type Principal struct {
	ID       uint
	Username string
	Email    string
	Role     entity.Role
}

func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
	c.Set("userId", p.ID)
	c.Set("role", string(p.Role))
}

func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

func CurrentUserID(c *gin.Context) uint {
	p, _ := CurrentPrincipal(c)
	return p.ID
}

func CurrentRole(c *gin.Context) entity.Role {
	p, _ := CurrentPrincipal(c)
	return p.Role
}
