package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	Query string `json:"query" validate:"max=2000"`
}

// SummaryRequest carries the query parameters of GET /api/v1/books/summary.
type SummaryRequest struct {
	Title string `validate:"required,max=512"`
}

// MathRequest is the body of POST /api/v1/math/{operation}. Which operands
// are required depends on the operation. An absent Log means true.
type MathRequest struct {
	Base     *int64 `json:"base"`
	Exponent *int64 `json:"exponent"`
	N        *int64 `json:"n"`
	Log      *bool  `json:"log"`
}

// powerOperands must both be present for power.
type powerOperands struct {
	Base     *int64 `validate:"required"`
	Exponent *int64 `validate:"required"`
}

// countOperand must be present for fibonacci and factorial.
type countOperand struct {
	N *int64 `validate:"required"`
}

// HistoryRequest carries the query parameters of GET /api/v1/math/history.
type HistoryRequest struct {
	Limit int `validate:"gte=1,lte=1000"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// describeValidation flattens validator errors into one readable message.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "max", "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
