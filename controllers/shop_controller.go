package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/n4mp3un9/car-rental-sub001/pkg/resp"
	"github.com/n4mp3un9/car-rental-sub001/services"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

type PolicyReq struct {
	Policy string `json:"policy" binding:"max=10000"`
}

type ShopController struct {
	Shops         *services.ShopService
	Notifications *services.NotificationService
}

func NewShopController(shops *services.ShopService, notifications *services.NotificationService) *ShopController {
	return &ShopController{Shops: shops, Notifications: notifications}
}

// GET /api/shops/:id
func (sc *ShopController) Profile(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	p, err := sc.Shops.Profile(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, p)
}

// GET /api/shop/policy
func (sc *ShopController) GetPolicy(c *gin.Context) {
	policy, err := sc.Shops.Policy(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"policy": policy})
}

// PUT /api/shop/policy
func (sc *ShopController) UpdatePolicy(c *gin.Context) {
	var req PolicyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	policy, err := sc.Shops.UpdatePolicy(c.Request.Context(), utils.CurrentUserID(c), req.Policy)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"policy": policy})
}

// GET /api/shop/dashboard?period=week|month|year
func (sc *ShopController) Dashboard(c *gin.Context) {
	d, err := sc.Shops.Dashboard(c.Request.Context(), utils.CurrentUserID(c), c.Query("period"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, d)
}

// GET /api/shop/customers
func (sc *ShopController) Customers(c *gin.Context) {
	p := pageFrom(c)
	rows, total, err := sc.Shops.Customers(c.Request.Context(), utils.CurrentUserID(c), p)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, paged(rows, total, p))
}

// GET /api/shop/notifications
func (sc *ShopController) ShopNotifications(c *gin.Context) {
	counts, err := sc.Notifications.ShopCounts(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, counts)
}

// GET /api/customer/notifications
func (sc *ShopController) CustomerNotifications(c *gin.Context) {
	counts, err := sc.Notifications.CustomerCounts(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, counts)
}
