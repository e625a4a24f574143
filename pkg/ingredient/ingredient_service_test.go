package ingredient

import (
	"context"
	"recipehub/domain"
	"recipehub/entities"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockIngredientRepository struct {
	mock.Mock
}

func (m *mockIngredientRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return m.Called(ctx, ingredient).Error(0)
}

func (m *mockIngredientRepository) GetIngredients(ctx context.Context, name string) ([]*entities.Ingredient, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ingredient), args.Error(1)
}

func (m *mockIngredientRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Ingredient), args.Error(1)
}

func (m *mockIngredientRepository) GetIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ingredient), args.Error(1)
}

func (m *mockIngredientRepository) ExistsByNameAndUnit(ctx context.Context, name, unit string) (bool, error) {
	args := m.Called(ctx, name, unit)
	return args.Bool(0), args.Error(1)
}

func TestGetIngredientDetailNotFound(t *testing.T) {
	repo := new(mockIngredientRepository)
	service := NewIngredientService(repo)

	id := uuid.New().String()
	repo.On("GetIngredientByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetIngredientDetail(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestImportIngredients(t *testing.T) {
	repo := new(mockIngredientRepository)
	service := NewIngredientService(repo)

	repo.On("ExistsByNameAndUnit", mock.Anything, "flour", "g").Return(true, nil)
	repo.On("ExistsByNameAndUnit", mock.Anything, "sugar", "g").Return(false, nil)
	repo.On("ExistsByNameAndUnit", mock.Anything, "milk", "ml").Return(false, nil)
	repo.On("CreateIngredient", mock.Anything, mock.Anything).Return(nil)

	records := [][]string{
		{"flour", "g"},       // already present, skipped
		{"sugar", "g"},       // new
		{" milk ", " ml "},   // whitespace is trimmed
		{"incomplete"},       // too short, skipped
	}

	created, err := service.ImportIngredients(context.Background(), records)

	require.NoError(t, err)
	assert.Equal(t, 2, created)
	repo.AssertNumberOfCalls(t, "CreateIngredient", 2)
}

func TestImportIngredientsSkipsRacingDuplicates(t *testing.T) {
	repo := new(mockIngredientRepository)
	service := NewIngredientService(repo)

	repo.On("ExistsByNameAndUnit", mock.Anything, "salt", "g").Return(false, nil)
	repo.On("CreateIngredient", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	created, err := service.ImportIngredients(context.Background(), [][]string{{"salt", "g"}})

	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestGetIngredientsForwardsPrefix(t *testing.T) {
	repo := new(mockIngredientRepository)
	service := NewIngredientService(repo)

	repo.On("GetIngredients", mock.Anything, "fl").
		Return([]*entities.Ingredient{
			{ID: uuid.New(), Name: "flour", MeasurementUnit: "g"},
		}, nil)

	res, err := service.GetIngredients(context.Background(), "fl")

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "flour", res[0].Name)
}
