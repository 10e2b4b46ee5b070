package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/pkg/resp"
	"github.com/n4mp3un9/car-rental-sub001/repository"
	"github.com/n4mp3un9/car-rental-sub001/services"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

type CreateRentalReq struct {
	CarID          uint   `json:"carId" binding:"required"`
	StartDate      string `json:"startDate" binding:"required,datestr"`
	EndDate        string `json:"endDate" binding:"required,datestr"`
	PickupLocation string `json:"pickupLocation"`
	ReturnLocation string `json:"returnLocation"`
	Note           string `json:"note" binding:"max=1000"`
	WithInsurance  bool   `json:"withInsurance"`
	PaymentMethod  string `json:"paymentMethod" binding:"omitempty,paymethod"`
}

type ReasonReq struct {
	Reason string `json:"reason" binding:"max=500"`
}

type RentalController struct{ Service *services.RentalService }

func NewRentalController(s *services.RentalService) *RentalController {
	return &RentalController{Service: s}
}

func rentalFilter(c *gin.Context) repository.RentalFilter {
	return repository.RentalFilter{
		RentalStatus:  entity.RentalStatus(c.Query("status")),
		PaymentStatus: entity.PaymentStatus(c.Query("payment_status")),
		Page:          pageFrom(c),
	}
}

// ===== Customer =====

// POST /api/customer/rentals
func (rc *RentalController) Create(c *gin.Context) {
	var req CreateRentalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	start, _ := utils.ParseDate(req.StartDate)
	end, _ := utils.ParseDate(req.EndDate)

	rental, err := rc.Service.CreateBooking(c.Request.Context(), utils.CurrentUserID(c), services.BookingInput{
		CarID:          req.CarID,
		StartDate:      start,
		EndDate:        end,
		PickupLocation: req.PickupLocation,
		ReturnLocation: req.ReturnLocation,
		Note:           req.Note,
		WithInsurance:  req.WithInsurance,
		PaymentMethod:  entity.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, rental)
}

// GET /api/customer/rentals
func (rc *RentalController) ListMine(c *gin.Context) {
	f := rentalFilter(c)
	items, total, err := rc.Service.ListForCustomer(c.Request.Context(), utils.CurrentUserID(c), f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, paged(items, total, f.Page))
}

// GET /api/customer/rentals/:id
func (rc *RentalController) GetMine(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	r, err := rc.Service.GetForCustomer(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, r)
}

// PUT /api/customer/rentals/:id/cancel
func (rc *RentalController) CustomerCancel(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var req ReasonReq
	if err := bindOptionalJSON(c, &req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	r, err := rc.Service.CustomerCancel(c.Request.Context(), utils.CurrentUserID(c), id, req.Reason)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, r)
}

// PUT /api/customer/rentals/:id/return
func (rc *RentalController) RequestReturn(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	r, err := rc.Service.RequestReturn(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, r)
}

// ===== Shop =====

// GET /api/shop/rentals
func (rc *RentalController) ListForShop(c *gin.Context) {
	f := rentalFilter(c)
	items, total, err := rc.Service.ListForShop(c.Request.Context(), utils.CurrentUserID(c), f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, paged(items, total, f.Page))
}

// GET /api/shop/rentals/:id
func (rc *RentalController) GetForShop(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	r, err := rc.Service.GetForShop(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, r)
}

type shopAction func(s *services.RentalService, c *gin.Context, shopID, id uint) (*entity.Rental, error)

func (rc *RentalController) shopAction(fn shopAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c, "id")
		if err != nil {
			resp.Error(c, err)
			return
		}
		r, err := fn(rc.Service, c, utils.CurrentUserID(c), id)
		if err != nil {
			resp.Error(c, err)
			return
		}
		resp.OK(c, r)
	}
}

// PUT /api/shop/rentals/:id/confirm
func (rc *RentalController) Confirm() gin.HandlerFunc {
	return rc.shopAction(func(s *services.RentalService, c *gin.Context, shopID, id uint) (*entity.Rental, error) {
		return s.Confirm(c.Request.Context(), shopID, id)
	})
}

// PUT /api/shop/rentals/:id/start
func (rc *RentalController) Start() gin.HandlerFunc {
	return rc.shopAction(func(s *services.RentalService, c *gin.Context, shopID, id uint) (*entity.Rental, error) {
		return s.Start(c.Request.Context(), shopID, id)
	})
}

// PUT /api/shop/rentals/:id/complete
func (rc *RentalController) Complete() gin.HandlerFunc {
	return rc.shopAction(func(s *services.RentalService, c *gin.Context, shopID, id uint) (*entity.Rental, error) {
		return s.Complete(c.Request.Context(), shopID, id)
	})
}

// PUT /api/shop/rentals/:id/cancel
func (rc *RentalController) ShopCancel() gin.HandlerFunc {
	return rc.shopAction(func(s *services.RentalService, c *gin.Context, shopID, id uint) (*entity.Rental, error) {
		var req ReasonReq
		if err := bindOptionalJSON(c, &req); err != nil {
			return nil, apperr.Validation(err.Error())
		}
		return s.ShopCancel(c.Request.Context(), shopID, id, req.Reason)
	})
}

// PUT /api/shop/rentals/:id/acknowledge
func (rc *RentalController) Acknowledge() gin.HandlerFunc {
	return rc.shopAction(func(s *services.RentalService, c *gin.Context, shopID, id uint) (*entity.Rental, error) {
		return s.Acknowledge(c.Request.Context(), shopID, id)
	})
}
