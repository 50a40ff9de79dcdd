// package models defines the data model for the job board
package models

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/desertthunder/jobboard/internal/shared"
	"github.com/go-playground/validator/v10"
)

// Criteria keys understood by repository List implementations.
const (
	CriteriaLimit = "limit" // CriteriaLimit caps the number of returned records (int)
	CriteriaSlug  = "slug"  // CriteriaSlug filters jobs by slug (string)
	CriteriaEmail = "email" // CriteriaEmail filters admins by email (string)
)

// Model defines the base interface for all persistent models.
type Model interface {
	Key() string     // Key returns the unique identifier for this model
	Validate() error // Validate checks if the model's data is valid and returns an error if not
}

// Store defines data access for append-only collections.
type Store[T Model] interface {
	Create(ctx context.Context, model T) error                      // Create inserts a new model into the database
	Get(ctx context.Context, id string) (T, error)                  // Get retrieves a model by its ID
	List(ctx context.Context, criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Repository defines the interface for data access operations on mutable collections.
type Repository[T Model] interface {
	Store[T]
	Update(ctx context.Context, model T) error   // Update modifies an existing model in the database
	Delete(ctx context.Context, id string) error // Delete removes a model from the database by its ID
}

var validate = newValidator()

// newValidator reports fields by their json names so messages match request payloads.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// check runs struct validation and folds the field errors into a single [shared.ErrValidation].
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return fmt.Errorf("%w: %s", shared.ErrValidation, strings.Join(msgs, ", "))
}
