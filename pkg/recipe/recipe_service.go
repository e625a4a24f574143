package recipe

import (
	"context"
	"errors"
	"fmt"
	"recipehub/domain"
	"recipehub/entities"
	"recipehub/internal/utils"
	"recipehub/internal/utils/storage"
	"recipehub/pkg/ingredient"
	"recipehub/pkg/tag"
	"recipehub/pkg/user"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID, userID string) error
		GetRecipeDetail(ctx context.Context, recipeID, userID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, filter RecipeFilter, page, limit int) ([]domain.RecipeResponse, int64, error)
		Favorite(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error)
		Unfavorite(ctx context.Context, recipeID, userID string) error
		AddToShoppingCart(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error)
		RemoveFromShoppingCart(ctx context.Context, recipeID, userID string) error
		DownloadShoppingList(ctx context.Context, userID string) (string, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		tagRepository        tag.TagRepository
		ingredientRepository ingredient.IngredientRepository
		userRepository       user.UserRepository
		s3                   storage.Client
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	tagRepository tag.TagRepository,
	ingredientRepository ingredient.IngredientRepository,
	userRepository user.UserRepository,
	s3 storage.Client,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
		userRepository:       userRepository,
		s3:                   s3,
	}
}

// resolveTags checks the requested tag ids against the catalog before
// anything is written. The returned tags keep the request order.
func (s *recipeService) resolveTags(ctx context.Context, tagIDs []string) ([]*entities.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, domain.ErrTagsRequired
	}

	ids := make([]uuid.UUID, 0, len(tagIDs))
	seen := make(map[uuid.UUID]bool, len(tagIDs))
	for _, raw := range tagIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		if seen[id] {
			return nil, domain.ErrTagsDuplicated
		}
		seen[id] = true
		ids = append(ids, id)
	}

	found, err := s.tagRepository.GetTagsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entities.Tag, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	tags := make([]*entities.Tag, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return nil, &domain.TagNotFoundError{ID: id}
		}
		tags = append(tags, t)
	}

	return tags, nil
}

// resolveIngredients checks the requested ingredient ids and amounts
// against the catalog before anything is written.
func (s *recipeService) resolveIngredients(ctx context.Context, reqs []domain.RecipeIngredientRequest) ([]*entities.RecipeIngredient, error) {
	if len(reqs) == 0 {
		return nil, domain.ErrIngredientsRequired
	}

	ids := make([]uuid.UUID, 0, len(reqs))
	amounts := make(map[uuid.UUID]int, len(reqs))
	for _, req := range reqs {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		if _, ok := amounts[id]; ok {
			return nil, domain.ErrIngredientsDuplicate
		}
		if req.Amount < domain.MinIngredientAmount || req.Amount > domain.MaxIngredientAmount {
			return nil, domain.ErrAmountOutOfRange
		}
		amounts[id] = req.Amount
		ids = append(ids, id)
	}

	found, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entities.Ingredient, len(found))
	for _, ing := range found {
		byID[ing.ID] = ing
	}

	items := make([]*entities.RecipeIngredient, 0, len(ids))
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, &domain.IngredientNotFoundError{ID: id}
		}
		items = append(items, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: id,
			Amount:       amounts[id],
		})
	}

	return items, nil
}

func (s *recipeService) toRecipeResponse(ctx context.Context, recipe *entities.Recipe, requesterID string) domain.RecipeResponse {
	isFavorited, isInCart := false, false
	if requesterID != "" {
		isFavorited, _ = s.recipeRepository.IsFavorited(ctx, requesterID, recipe.ID.String())
		isInCart, _ = s.recipeRepository.IsInShoppingCart(ctx, requesterID, recipe.ID.String())
	}

	author := domain.UserResponse{}
	if recipe.Author != nil {
		isSubscribed := false
		if requesterID != "" && requesterID != recipe.AuthorID.String() {
			isSubscribed, _ = s.userRepository.IsSubscribed(ctx, requesterID, recipe.AuthorID.String())
		}
		author = domain.UserResponse{
			ID:           recipe.Author.ID.String(),
			Email:        recipe.Author.Email,
			Username:     recipe.Author.Username,
			FirstName:    recipe.Author.FirstName,
			LastName:     recipe.Author.LastName,
			IsSubscribed: isSubscribed,
		}
	}

	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tags = append(tags, domain.TagResponse{
			ID:    t.ID.String(),
			Name:  t.Name,
			Color: t.Color,
			Slug:  t.Slug,
		})
	}

	ingredients := make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, item := range recipe.Ingredients {
		resp := domain.RecipeIngredientResponse{
			ID:     item.IngredientID.String(),
			Amount: item.Amount,
		}
		if item.Ingredient != nil {
			resp.Name = item.Ingredient.Name
			resp.MeasurementUnit = item.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, resp)
	}

	return domain.RecipeResponse{
		ID:               recipe.ID.String(),
		Author:           author,
		Tags:             tags,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		Name:             recipe.Name,
		Image:            recipe.ImageURL,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

func toRecipeShortResponse(recipe *entities.Recipe) domain.RecipeShortResponse {
	return domain.RecipeShortResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	authorID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	items, err := s.resolveIngredients(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	if req.Image == "" {
		return domain.RecipeResponse{}, domain.ErrImageRequired
	}
	payload, contentType, err := utils.DecodeBase64Image(req.Image)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrImageInvalid
	}

	recipeID := uuid.New()
	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("recipe-%s", recipeID),
		payload,
		contentType,
		"recipes",
		storage.AllowImage...,
	)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:          recipeID,
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		ImageURL:    s.s3.GetPublicLinkKey(objectKey),
		CookingTime: req.CookingTime,
		Tags:        tags,
	}
	for _, item := range items {
		item.RecipeID = recipeID
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, items); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return domain.RecipeResponse{}, err
	}

	created, err := s.recipeRepository.GetRecipeByID(ctx, recipeID.String())
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.toRecipeResponse(ctx, created, userID), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if recipe.AuthorID.String() != userID {
		return domain.RecipeResponse{}, domain.ErrNotRecipeAuthor
	}

	// Resolve everything up front so a bad payload cannot leave the
	// recipe half rewritten.
	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	items, err := s.resolveIngredients(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	for _, item := range items {
		item.RecipeID = recipe.ID
	}

	if req.Image != "" {
		payload, contentType, err := utils.DecodeBase64Image(req.Image)
		if err != nil {
			return domain.RecipeResponse{}, domain.ErrImageInvalid
		}

		var objectKey string
		if recipe.ImageURL != "" {
			objectKey, err = s.s3.UpdateFile(
				s.s3.GetObjectKeyFromLink(recipe.ImageURL),
				payload,
				contentType,
				storage.AllowImage...,
			)
		} else {
			objectKey, err = s.s3.UploadFile(
				fmt.Sprintf("recipe-%s", recipe.ID),
				payload,
				contentType,
				"recipes",
				storage.AllowImage...,
			)
		}
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, tags, items); err != nil {
		return domain.RecipeResponse{}, err
	}

	updated, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.toRecipeResponse(ctx, updated, userID), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.AuthorID.String() != userID {
		return domain.ErrNotRecipeAuthor
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipeID); err != nil {
		return err
	}

	if recipe.ImageURL != "" {
		_ = s.s3.DeleteFile(s.s3.GetObjectKeyFromLink(recipe.ImageURL))
	}

	return nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	return s.toRecipeResponse(ctx, recipe, userID), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter RecipeFilter, page, limit int) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, s.toRecipeResponse(ctx, recipe, filter.UserID))
	}

	return result, count, nil
}

func (s *recipeService) Favorite(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeShortResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeShortResponse{}, err
	}

	favorited, err := s.recipeRepository.IsFavorited(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}
	if favorited {
		return domain.RecipeShortResponse{}, domain.ErrAlreadyFavorited
	}

	if err := s.recipeRepository.AddFavorite(ctx, userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeShortResponse{}, domain.ErrAlreadyFavorited
		}
		return domain.RecipeShortResponse{}, err
	}

	return toRecipeShortResponse(recipe), nil
}

func (s *recipeService) Unfavorite(ctx context.Context, recipeID, userID string) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	favorited, err := s.recipeRepository.IsFavorited(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !favorited {
		return domain.ErrNotInFavorites
	}

	return s.recipeRepository.RemoveFavorite(ctx, userID, recipeID)
}

func (s *recipeService) AddToShoppingCart(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeShortResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeShortResponse{}, err
	}

	inCart, err := s.recipeRepository.IsInShoppingCart(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}
	if inCart {
		return domain.RecipeShortResponse{}, domain.ErrAlreadyInCart
	}

	if err := s.recipeRepository.AddToShoppingCart(ctx, userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeShortResponse{}, domain.ErrAlreadyInCart
		}
		return domain.RecipeShortResponse{}, err
	}

	return toRecipeShortResponse(recipe), nil
}

func (s *recipeService) RemoveFromShoppingCart(ctx context.Context, recipeID, userID string) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	inCart, err := s.recipeRepository.IsInShoppingCart(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !inCart {
		return domain.ErrNotInCart
	}

	return s.recipeRepository.RemoveFromShoppingCart(ctx, userID, recipeID)
}

func (s *recipeService) DownloadShoppingList(ctx context.Context, userID string) (string, error) {
	totals, err := s.recipeRepository.GetShoppingList(ctx, userID)
	if err != nil {
		return "", err
	}
	return BuildShoppingList(totals), nil
}

// BuildShoppingList renders aggregated cart rows as plain text, one
// "name (unit) - amount" line per ingredient under a fixed header. An
// empty cart produces the header alone.
func BuildShoppingList(items []IngredientTotal) string {
	var b strings.Builder
	b.WriteString(domain.ShoppingListHeader)
	b.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s) - %d\n", item.Name, item.MeasurementUnit, item.Total)
	}
	return b.String()
}
