package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/resp"
	"github.com/n4mp3un9/car-rental-sub001/services"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

type NoteReq struct {
	Note string `json:"note" binding:"max=500"`
}

type PaymentController struct{ Service *services.PaymentService }

func NewPaymentController(s *services.PaymentService) *PaymentController {
	return &PaymentController{Service: s}
}

// POST /api/customer/rentals/:id/payment (multipart "proof")
func (pc *PaymentController) SubmitProof(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	fh, err := c.FormFile("proof")
	if err != nil {
		resp.BadRequest(c, "proof file is required")
		return
	}
	p, err := pc.Service.SubmitProof(c.Request.Context(), utils.CurrentUserID(c), id, services.ProofInput{
		File:          fh,
		Method:        entity.PaymentMethod(c.PostForm("paymentMethod")),
		TransactionID: c.PostForm("transactionId"),
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, p)
}

// GET /api/shop/payments?status=
// Defaults to slips waiting for review; status=all lists everything.
func (pc *PaymentController) ListForShop(c *gin.Context) {
	status := entity.PaymentStatus(c.DefaultQuery("status", string(entity.PaymentPendingVerification)))
	if status == "all" {
		status = ""
	}
	p := pageFrom(c)
	items, total, err := pc.Service.ListForShop(c.Request.Context(), utils.CurrentUserID(c), status, p)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, paged(items, total, p))
}

// PUT /api/shop/payments/:id/verify
func (pc *PaymentController) Verify(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	p, err := pc.Service.Verify(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, p)
}

// PUT /api/shop/payments/:id/reject
func (pc *PaymentController) Reject(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var req ReasonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := pc.Service.Reject(c.Request.Context(), utils.CurrentUserID(c), id, req.Reason)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, p)
}

// GET /api/shop/refunds
func (pc *PaymentController) ListRefunds(c *gin.Context) {
	p := pageFrom(c)
	items, total, err := pc.Service.ListRefunds(c.Request.Context(), utils.CurrentUserID(c), p)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, paged(items, total, p))
}

// PUT /api/shop/refunds/:id/approve
func (pc *PaymentController) ApproveRefund(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var req NoteReq
	if err := bindOptionalJSON(c, &req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := pc.Service.ApproveRefund(c.Request.Context(), utils.CurrentUserID(c), id, req.Note)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, p)
}

// PUT /api/shop/refunds/:id/deny
func (pc *PaymentController) DenyRefund(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var req ReasonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := pc.Service.DenyRefund(c.Request.Context(), utils.CurrentUserID(c), id, req.Reason)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, p)
}
