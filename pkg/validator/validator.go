package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"go-jossydiva-api/internal/model"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	validate.RegisterValidation("uuid_required", validUUID)
	validate.RegisterValidation("discount_type", validDiscountType)
	validate.RegisterValidation("payment_method", validPaymentMethod)
	validate.RegisterValidation("sale_source", validSaleSource)
	validate.RegisterStructValidation(validateProductDiscount, model.Product{})
}

// validUUID rejects the zero uuid, which BodyParser leaves behind for
// a missing id field.
func validUUID(fl validator.FieldLevel) bool {
	id, ok := fl.Field().Interface().(uuid.UUID)
	return ok && id != uuid.Nil
}

func validDiscountType(fl validator.FieldLevel) bool {
	switch model.DiscountType(fl.Field().String()) {
	case model.DiscountPercentage, model.DiscountFixed:
		return true
	}
	return false
}

func validPaymentMethod(fl validator.FieldLevel) bool {
	switch model.PaymentMethod(fl.Field().String()) {
	case model.PaymentCash, model.PaymentTransfer:
		return true
	}
	return false
}

func validSaleSource(fl validator.FieldLevel) bool {
	switch model.SaleSource(fl.Field().String()) {
	case model.SourceWalkIn, model.SourceWebsite:
		return true
	}
	return false
}

// validateProductDiscount covers the discount rules that span fields:
// a percentage value stays within 100 and a fully bounded window
// starts before it ends. Field-level tags cannot see siblings.
func validateProductDiscount(sl validator.StructLevel) {
	p := sl.Current().Interface().(model.Product)
	if p.DiscountType == nil {
		return
	}
	if *p.DiscountType == model.DiscountPercentage && p.DiscountValue > 100 {
		sl.ReportError(p.DiscountValue, "DiscountValue", "discount_value", "lte", "100")
	}
	if p.DiscountStartAt != nil && p.DiscountEndAt != nil && !p.DiscountStartAt.Before(*p.DiscountEndAt) {
		sl.ReportError(p.DiscountEndAt, "DiscountEndAt", "discount_end_at", "gtfield", "DiscountStartAt")
	}
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
