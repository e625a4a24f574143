package tag

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

type mockTagRepository struct {
	mock.Mock
}

func (m *mockTagRepository) CreateTag(ctx context.Context, tag *entities.Tag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *mockTagRepository) GetTags(ctx context.Context) ([]*entities.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) GetTagByID(ctx context.Context, id string) (*entities.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Tag), args.Error(1)
}

func TestCreateTagGeneratesSlug(t *testing.T) {
	tagRepo := new(mockTagRepository)
	service := NewTagService(tagRepo)

	var created *entities.Tag
	tagRepo.On("CreateTag", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entities.Tag)
		}).
		Return(nil)

	res, err := service.CreateTag(context.Background(), "Main Course", "#49B64E", "")

	require.NoError(t, err)
	assert.Equal(t, "main-course", res.Slug)
	require.NotNil(t, created)
	assert.Equal(t, "main-course", created.Slug)
}

func TestCreateTagKeepsExplicitSlug(t *testing.T) {
	tagRepo := new(mockTagRepository)
	service := NewTagService(tagRepo)

	tagRepo.On("CreateTag", mock.Anything, mock.Anything).Return(nil)

	res, err := service.CreateTag(context.Background(), "Breakfast", "#E26C2D", "morning")

	require.NoError(t, err)
	assert.Equal(t, "morning", res.Slug)
}

func TestCreateTagDuplicate(t *testing.T) {
	tagRepo := new(mockTagRepository)
	service := NewTagService(tagRepo)

	tagRepo.On("CreateTag", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := service.CreateTag(context.Background(), "Breakfast", "#E26C2D", "breakfast")

	assert.ErrorIs(t, err, domain.ErrTagAlreadyExists)
}

func TestGetTagDetailNotFound(t *testing.T) {
	tagRepo := new(mockTagRepository)
	service := NewTagService(tagRepo)

	id := uuid.New().String()
	tagRepo.On("GetTagByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetTagDetail(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}
