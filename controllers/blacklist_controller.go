package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/n4mp3un9/car-rental-sub001/pkg/resp"
	"github.com/n4mp3un9/car-rental-sub001/services"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

type BlacklistReq struct {
	CustomerID uint   `json:"customerId" binding:"required"`
	Reason     string `json:"reason" binding:"max=500"`
}

type BlacklistController struct{ Service *services.BlacklistService }

func NewBlacklistController(s *services.BlacklistService) *BlacklistController {
	return &BlacklistController{Service: s}
}

// GET /api/blacklist
func (bc *BlacklistController) List(c *gin.Context) {
	items, err := bc.Service.List(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

// POST /api/blacklist
func (bc *BlacklistController) Add(c *gin.Context) {
	var req BlacklistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	b, err := bc.Service.Add(c.Request.Context(), utils.CurrentUserID(c), req.CustomerID, req.Reason)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, b)
}

// DELETE /api/blacklist/:customerId
func (bc *BlacklistController) Remove(c *gin.Context) {
	customerID, err := paramID(c, "customerId")
	if err != nil {
		resp.Error(c, err)
		return
	}
	if err := bc.Service.Remove(c.Request.Context(), utils.CurrentUserID(c), customerID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": customerID})
}

// GET /api/blacklist/search?q=
func (bc *BlacklistController) Search(c *gin.Context) {
	items, err := bc.Service.Search(c.Request.Context(), utils.CurrentUserID(c), c.Query("q"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}
