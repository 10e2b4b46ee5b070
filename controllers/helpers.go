package controllers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/repository"
)

// paramID reads a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Newf(apperr.KindValidation, "invalid %s", name)
	}
	return uint(id), nil
}

func pageFrom(c *gin.Context) repository.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return repository.NewPage(page, limit)
}

// paged is the list envelope: items plus paging meta.
func paged(items any, total int64, p repository.Page) gin.H {
	return gin.H{
		"items": items,
		"meta":  gin.H{"page": p.Page, "limit": p.Limit, "total": total},
	}
}

// bindOptionalJSON binds a body that may be left out entirely. A body that
// is present still has to pass validation.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
