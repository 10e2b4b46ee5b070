package controllers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

// RegisterValidators adds the domain rules used in binding tags to gin's
// validator engine. Call once before serving.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	rules := map[string]validator.Func{
		"carstatus": func(fl validator.FieldLevel) bool {
			return entity.CarStatus(fl.Field().String()).ShopSettable()
		},
		"datestr": func(fl validator.FieldLevel) bool {
			_, err := utils.ParseDate(fl.Field().String())
			return err == nil
		},
		"role": func(fl validator.FieldLevel) bool {
			return entity.Role(fl.Field().String()).IsValid()
		},
		"paymethod": func(fl validator.FieldLevel) bool {
			return entity.PaymentMethod(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
