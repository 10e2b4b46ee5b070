package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/pkg/resp"
	"github.com/n4mp3un9/car-rental-sub001/repository"
	"github.com/n4mp3un9/car-rental-sub001/services"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

type CarRequest struct {
	Brand         string  `json:"brand" binding:"required"`
	Model         string  `json:"model" binding:"required"`
	Year          int     `json:"year" binding:"omitempty,min=1950,max=2100"`
	LicensePlate  string  `json:"licensePlate" binding:"required"`
	CarType       string  `json:"carType"`
	Transmission  string  `json:"transmission"`
	FuelType      string  `json:"fuelType"`
	Seats         int     `json:"seats" binding:"omitempty,min=1,max=60"`
	Color         string  `json:"color"`
	DailyRate     float64 `json:"dailyRate" binding:"required,gt=0"`
	InsuranceRate float64 `json:"insuranceRate" binding:"gte=0"`
	DepositAmount float64 `json:"depositAmount" binding:"gte=0"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
}

func (r CarRequest) input() services.CarInput {
	return services.CarInput{
		Brand:         r.Brand,
		Model:         r.Model,
		Year:          r.Year,
		LicensePlate:  r.LicensePlate,
		CarType:       r.CarType,
		Transmission:  r.Transmission,
		FuelType:      r.FuelType,
		Seats:         r.Seats,
		Color:         r.Color,
		DailyRate:     r.DailyRate,
		InsuranceRate: r.InsuranceRate,
		DepositAmount: r.DepositAmount,
		Description:   r.Description,
		Location:      r.Location,
	}
}

type CarStatusRequest struct {
	Status string `json:"status" binding:"required,carstatus"`
}

type CarSearchQuery struct {
	Q            string  `form:"q"`
	CarType      string  `form:"car_type"`
	Transmission string  `form:"transmission"`
	FuelType     string  `form:"fuel_type"`
	SeatsMin     int     `form:"seats_min" binding:"omitempty,min=0"`
	PriceMin     float64 `form:"price_min" binding:"omitempty,min=0"`
	PriceMax     float64 `form:"price_max" binding:"omitempty,min=0"`
	ShopID       uint    `form:"shop_id"`
	StartDate    string  `form:"start_date" binding:"omitempty,datestr"`
	EndDate      string  `form:"end_date" binding:"omitempty,datestr"`
	Sort         string  `form:"sort" binding:"omitempty,oneof=price_asc price_desc newest"`
}

type CarController struct{ Service *services.CarService }

func NewCarController(s *services.CarService) *CarController { return &CarController{Service: s} }

// GET /api/cars
func (cc *CarController) Search(c *gin.Context) {
	var q CarSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	f := repository.CarFilter{
		Query:        q.Q,
		CarType:      q.CarType,
		Transmission: q.Transmission,
		FuelType:     q.FuelType,
		SeatsMin:     q.SeatsMin,
		PriceMin:     q.PriceMin,
		PriceMax:     q.PriceMax,
		ShopID:       q.ShopID,
		Sort:         q.Sort,
		Page:         pageFrom(c),
	}
	if q.StartDate != "" {
		t, _ := utils.ParseDate(q.StartDate)
		f.Start = &t
	}
	if q.EndDate != "" {
		t, _ := utils.ParseDate(q.EndDate)
		f.End = &t
	}
	cars, total, err := cc.Service.Search(c.Request.Context(), f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, paged(cars, total, f.Page))
}

// GET /api/cars/:id
func (cc *CarController) Get(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	d, err := cc.Service.Detail(c.Request.Context(), id, utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, d)
}

// POST /api/cars
func (cc *CarController) Create(c *gin.Context) {
	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	car, err := cc.Service.Create(c.Request.Context(), utils.CurrentUserID(c), req.input())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, car)
}

// PUT /api/cars/:id
func (cc *CarController) Update(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	car, err := cc.Service.Update(c.Request.Context(), utils.CurrentUserID(c), id, req.input())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, car)
}

// PUT /api/cars/:id/status
func (cc *CarController) SetStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var req CarStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	car, err := cc.Service.SetStatus(c.Request.Context(), utils.CurrentUserID(c), id, entity.CarStatus(req.Status))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, car)
}

// DELETE /api/cars/:id
func (cc *CarController) Delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	if err := cc.Service.Delete(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// GET /api/shop/cars
func (cc *CarController) ListMine(c *gin.Context) {
	p := pageFrom(c)
	cars, total, err := cc.Service.ListForShop(c.Request.Context(), utils.CurrentUserID(c), entity.CarStatus(c.Query("status")), p)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, paged(cars, total, p))
}

// ---------------- Images ----------------

// POST /api/cars/:id/images (multipart "images")
func (cc *CarController) UploadImages(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		resp.BadRequest(c, "multipart form required")
		return
	}
	files := form.File["images"]
	if len(files) > utils.MaxFilesPerRequest {
		resp.Error(c, apperr.Validation("at most "+strconv.Itoa(utils.MaxFilesPerRequest)+" files per request"))
		return
	}
	imgs, err := cc.Service.AddImages(c.Request.Context(), utils.CurrentUserID(c), id, files)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, imgs)
}

// GET /api/cars/:id/images
func (cc *CarController) ListImages(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	imgs, err := cc.Service.ListImages(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, imgs)
}

// PUT /api/cars/:id/images/:imageId/primary
func (cc *CarController) SetPrimaryImage(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	imageID, err := paramID(c, "imageId")
	if err != nil {
		resp.Error(c, err)
		return
	}
	imgs, err := cc.Service.SetPrimaryImage(c.Request.Context(), utils.CurrentUserID(c), id, imageID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, imgs)
}

// DELETE /api/cars/:id/images/:imageId
func (cc *CarController) DeleteImage(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	imageID, err := paramID(c, "imageId")
	if err != nil {
		resp.Error(c, err)
		return
	}
	if err := cc.Service.DeleteImage(c.Request.Context(), utils.CurrentUserID(c), id, imageID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": imageID})
}
