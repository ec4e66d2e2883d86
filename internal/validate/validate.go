// Package validate wraps go-playground/validator with JSON field names,
// decimal support and Vietnamese messages.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MsgInvalid is the top-level message of every itemized validation failure.
const MsgInvalid = "Dữ liệu không hợp lệ"

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// Lets numeric rules (gt, gte, lte) apply to money fields.
	val.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return val
}

// Struct validates s and returns an *httpx.ValidationError listing every violation.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	details := make([]httpx.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, httpx.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return httpx.Invalid(MsgInvalid, details...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Trường này là bắt buộc"
	case "oneof":
		return fmt.Sprintf("Giá trị phải là một trong: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte", "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Phải có ít nhất %s ký tự", fe.Param())
		}
		return fmt.Sprintf("Giá trị tối thiểu là %s", fe.Param())
	case "lte", "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Không được vượt quá %s ký tự", fe.Param())
		}
		return fmt.Sprintf("Giá trị tối đa là %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Giá trị phải lớn hơn %s", fe.Param())
	case "datetime":
		return "Ngày phải có định dạng YYYY-MM-DD"
	case "email":
		return "Email không hợp lệ"
	case "uuid":
		return "Mã định danh không hợp lệ"
	default:
		return fmt.Sprintf("Không thỏa điều kiện %s", fe.Tag())
	}
}
