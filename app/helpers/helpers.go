package helpers

import (
	"fmt"
	"log"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
)

const MinPasswordLength = 6

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]+`)
	slugSpaces     = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// NewValidator reports field errors under their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s wajib diisi.", field)
		case "email":
			errorMessages[field] = fmt.Sprintf("%s harus berupa alamat email yang valid.", field)
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s harus berupa angka.", field)
		case "min", "gte":
			errorMessages[field] = fmt.Sprintf("%s minimal %s karakter/nilai.", field, err.Param())
		case "max", "lte":
			errorMessages[field] = fmt.Sprintf("%s maksimal %s karakter/nilai.", field, err.Param())
		case "gt":
			errorMessages[field] = fmt.Sprintf("%s harus lebih besar dari %s.", field, err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s harus salah satu dari: %s.", field, err.Param())
		case "url":
			errorMessages[field] = fmt.Sprintf("%s harus berupa URL yang valid.", field)
		default:
			errorMessages[field] = fmt.Sprintf("Validasi %s gagal pada field %s.", err.Tag(), field)
		}
	}
	return errorMessages
}

func PasswordCompare(hashPass string, password []byte) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashPass), password)
	if err != nil {

		log.Printf("PasswordCompare: password does not match or error: %v", err)
		return false
	}
	return true
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// GenerateSlug lowercases s, strips everything except letters, digits, spaces and
// hyphens, turns whitespace into hyphens and collapses repeated hyphens.
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SuffixSlug appends a millisecond timestamp to a slug that is already taken.
func SuffixSlug(slug string, now time.Time) string {
	return fmt.Sprintf("%s-%d", slug, now.UnixMilli())
}
