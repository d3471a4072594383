package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/satriobayu/authsvc/internal/apperror"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

var registerOnce sync.Once

// RegisterValidators installs the "password" rule on gin's validator.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("unexpected binding validator engine")
			return
		}
		err = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return passwordViolation(fl.Field().String()) == ""
		})
	})
	return err
}

// passwordViolation returns the first failed password rule, or "".
func passwordViolation(password string) string {
	var hasLetter, hasDigit, hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter, hasUpper = true, true
		case r >= 'a' && r <= 'z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	switch {
	case utf8.RuneCountInString(password) < minPasswordLength:
		return fmt.Sprintf("Password must be at least %d characters long", minPasswordLength)
	case len(password) > maxPasswordBytes:
		return fmt.Sprintf("Password must be at most %d bytes long", maxPasswordBytes)
	case !hasLetter:
		return "Password must contain at least 1 letter"
	case !hasDigit:
		return "Password must contain at least 1 digit"
	case !hasUpper:
		return "Password must contain at least 1 uppercase letter"
	case !hasSpecial:
		return "Password must contain at least 1 special character"
	}
	return ""
}

var requiredKinds = map[string]apperror.Kind{
	"Username":        apperror.KindUsernameRequired,
	"Password":        apperror.KindPasswordRequired,
	"CurrentPassword": apperror.KindPasswordRequired,
	"NewPassword":     apperror.KindPasswordRequired,
	"Token":           apperror.KindTokenRequired,
}

// bindJSON decodes and validates the body. On failure it writes a 400 with
// every violation and returns false.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return true
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, validationBody(err))
	return false
}

func validationBody(err error) apperror.Body {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		_, body := apperror.Render(apperror.New(apperror.KindMalformedBody))
		return body
	}

	body := apperror.Body{Errors: make([]apperror.Item, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		var appErr *apperror.Error
		switch fe.Tag() {
		case "password":
			value, _ := fe.Value().(string)
			appErr = apperror.WithDetail(apperror.KindWeakPassword, passwordViolation(value))
		default:
			kind, ok := requiredKinds[fe.StructField()]
			if !ok {
				kind = apperror.KindMalformedBody
			}
			appErr = apperror.New(kind)
		}
		body.Errors = append(body.Errors, apperror.Item{Code: appErr.Code(), Message: appErr.Message()})
	}
	return body
}
