package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	MessageSuccessGetIngredients      = "success get ingredients"
	MessageSuccessGetIngredientDetail = "success get ingredient detail"

	MessageFailedGetIngredients      = "failed to get ingredients"
	MessageFailedGetIngredientDetail = "failed to get ingredient detail"

	ErrIngredientNotFound      = errors.New("ingredient not found")
	ErrIngredientAlreadyExists = errors.New("ingredient with the same name and measurement unit already exists")
)

type IngredientResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// IngredientNotFoundError reports a recipe payload referencing an
// ingredient id that is not present in the catalog.
type IngredientNotFoundError struct {
	ID uuid.UUID
}

func (e *IngredientNotFoundError) Error() string {
	return fmt.Sprintf("ingredient %s does not exist", e.ID)
}
