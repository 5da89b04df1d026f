package ez

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	resp "account-api/internal/transport/http/response"
)

const (
	TagPassword = "password"
	MsgPassword = "Password must contain at least one uppercase letter, one lowercase letter, one number, one special character, and be at least 8 characters long"
	passSpecial = "@$!%*?#&"
)

func init() {
	binding.EnableDecoderDisallowUnknownFields = true
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonName)
		_ = v.RegisterValidation(TagPassword, func(fl validator.FieldLevel) bool {
			return PasswordComplex(fl.Field().String())
		})
	}
}

// PasswordComplex reports whether pw has at least 8 characters drawn from
// letters, digits and @$!%*?#&, with at least one of each class.
func PasswordComplex(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range pw {
		switch {
		case r > unicode.MaxASCII:
			return false
		case 'a' <= r && r <= 'z':
			lower = true
		case 'A' <= r && r <= 'Z':
			upper = true
		case '0' <= r && r <= '9':
			digit = true
		case strings.ContainsRune(passSpecial, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

// jsonName reports fields by their wire name.
func jsonName(f reflect.StructField) string {
	for _, tag := range []string{"json", "uri"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case TagPassword:
		return "does not meet complexity rules"
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}

func bindError(err error) resp.Envelope {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			if fe.Tag() == TagPassword {
				msgs = append(msgs, MsgPassword)
				continue
			}
			msgs = append(msgs, fmt.Sprintf("%s %s", fe.Field(), msgForTag(fe)))
		}
		return resp.Error(http.StatusBadRequest, strings.Join(msgs, "; "))
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return resp.Error(http.StatusRequestEntityTooLarge, "")
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return resp.Error(http.StatusBadRequest, fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type))
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return resp.Error(http.StatusBadRequest, "Malformed JSON body")
	}
	// encoding/json reports unknown fields as a plain error
	if msg := err.Error(); strings.HasPrefix(msg, "json: unknown field ") {
		field := strings.Trim(strings.TrimPrefix(msg, "json: unknown field "), `"`)
		return resp.Error(http.StatusBadRequest, fmt.Sprintf("property %s should not exist", field))
	}
	return resp.Error(http.StatusBadRequest, "Invalid request")
}
