package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var weekdayNames = map[string]struct{}{
	"sunday": {}, "monday": {}, "tuesday": {}, "wednesday": {},
	"thursday": {}, "friday": {}, "saturday": {},
}

// RegisterCustomValidators installs request-validation rules used by binding
// tags, currently the lowercase weekday names of a doctor's available days.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			_, ok := weekdayNames[fl.Field().String()]
			return ok
		})
	}
}
