// Package request holds what every handler needs to read a request: JSON
// decoding with struct-tag validation and the month query parameters.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/dompet/internal/analytics"
)

var ErrInvalidMonth = errors.New("year and month must form a valid calendar month")

// Validator wraps go-playground/validator with the workspace rules:
// the "owner" tag accepts only the two configured owners.
type Validator struct {
	v *validator.Validate
}

func NewValidator(owners ...string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	err := v.RegisterValidation("owner", func(fl validator.FieldLevel) bool {
		return slices.Contains(owners, fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("registering owner validation: %v", err))
	}

	return &Validator{v: v}
}

// Struct validates s and flattens field errors into one readable message.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}

	return errors.New(strings.Join(msgs, "; "))
}

// Var validates a single value against tag.
func (val *Validator) Var(field any, tag string) error {
	return val.v.Var(field, tag)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "owner":
		return fmt.Sprintf("%s is not a workspace owner", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted %s", fe.Field(), fe.Param())
	}

	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// DecodeJSON decodes the body into dst and validates it.
func DecodeJSON(r *http.Request, val *Validator, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	return val.Struct(dst)
}

// Month reads ?year=&month= and falls back to the month containing now for
// whichever is missing.
func Month(r *http.Request, now time.Time) (analytics.Month, error) {
	m := analytics.MonthOf(now)
	q := r.URL.Query()

	if s := q.Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			return analytics.Month{}, ErrInvalidMonth
		}

		m.Year = y
	}

	if s := q.Get("month"); s != "" {
		mo, err := strconv.Atoi(s)
		if err != nil {
			return analytics.Month{}, ErrInvalidMonth
		}

		m.Month = time.Month(mo)
	}

	if !m.Valid() {
		return analytics.Month{}, ErrInvalidMonth
	}

	return m, nil
}

// Date parses a YYYY-MM-DD value in the local calendar.
func Date(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, time.Local)
}
