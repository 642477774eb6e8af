package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"mortgage-calculator/domain"
)

// CalculateRequest is the loan input accepted by the mortgage endpoints.
// Ranges mirror the limits enforced by the service.
type CalculateRequest struct {
	Principal  float64 `json:"principal" validate:"required,gte=1000,lte=10000000"`
	AnnualRate float64 `json:"annual_rate" validate:"gte=0,lte=20"`
	TermYears  int     `json:"term_years" validate:"required,gte=1,lte=50"`
	View       string  `json:"view" validate:"omitempty,oneof=full first12 last12 yearly"`
}

func (r CalculateRequest) Parameters() domain.LoanParameters {
	return domain.LoanParameters{
		Principal:         r.Principal,
		AnnualRatePercent: r.AnnualRate,
		TermYears:         r.TermYears,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// describeValidation turns validator errors into a short client-facing message.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}

// parseQuery reads loan parameters from the URL query of a GET request.
// Downloads always cover the full schedule, so view is not read.
func parseQuery(r *http.Request) (CalculateRequest, error) {
	q := r.URL.Query()
	var req CalculateRequest
	var err error

	if req.Principal, err = strconv.ParseFloat(q.Get("principal"), 64); err != nil {
		return req, errors.New("principal must be a number")
	}
	if raw := q.Get("annual_rate"); raw != "" {
		if req.AnnualRate, err = strconv.ParseFloat(raw, 64); err != nil {
			return req, errors.New("annual_rate must be a number")
		}
	}
	if req.TermYears, err = strconv.Atoi(q.Get("term_years")); err != nil {
		return req, errors.New("term_years must be an integer")
	}
	return req, nil
}
