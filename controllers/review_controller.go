package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/n4mp3un9/car-rental-sub001/pkg/resp"
	"github.com/n4mp3un9/car-rental-sub001/services"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

type CreateReviewReq struct {
	RentalID uint   `json:"rentalId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"max=2000"`
}

type UpdateReviewReq struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

type ReviewController struct{ Service *services.ReviewService }

func NewReviewController(s *services.ReviewService) *ReviewController {
	return &ReviewController{Service: s}
}

// POST /api/customer/reviews
func (rc *ReviewController) Create(c *gin.Context) {
	var req CreateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rv, err := rc.Service.Create(c.Request.Context(), utils.CurrentUserID(c), req.RentalID, req.Rating, req.Comment)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, rv)
}

// PUT /api/customer/reviews/:id
func (rc *ReviewController) Update(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var req UpdateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rv, err := rc.Service.Update(c.Request.Context(), utils.CurrentUserID(c), id, req.Rating, req.Comment)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rv)
}

// DELETE /api/customer/reviews/:id
func (rc *ReviewController) Delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	if err := rc.Service.Delete(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// GET /api/customer/reviews
func (rc *ReviewController) ListMine(c *gin.Context) {
	items, err := rc.Service.ListMine(c.Request.Context(), utils.CurrentUserID(c), pageFrom(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/cars/:id/reviews
func (rc *ReviewController) ListForCar(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	out, err := rc.Service.ListForCar(c.Request.Context(), id, pageFrom(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /api/shops/:id/reviews
func (rc *ReviewController) ListForShop(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	out, err := rc.Service.ListForShop(c.Request.Context(), id, pageFrom(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
