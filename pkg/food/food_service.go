package food

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Food-Tracker/domain"
	"Food-Tracker/entities"
	"Food-Tracker/internal/utils"
	"Food-Tracker/internal/utils/logger"
	"Food-Tracker/pkg/expiry"
	"Food-Tracker/pkg/voice"

	"gorm.io/gorm"
)

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id uint, req domain.UpdateFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		DeleteFoodItem(ctx context.Context, id uint, userID string) error
		GetFoodItems(ctx context.Context, userID string, query domain.FoodItemsQuery) ([]domain.FoodItemResponse, error)
		GetFoodItemByID(ctx context.Context, id uint, userID string) (domain.FoodItemResponse, error)
		GetStats(ctx context.Context, userID string) (domain.FoodStatsResponse, error)
		ListFoodRecords(ctx context.Context, userID string) ([]voice.FoodRecord, error)
	}

	foodService struct {
		foodRepository FoodRepository
		maxItems       int
		log            *logger.Logger
		now            func() time.Time
	}
)

// NewFoodService builds the service; maxItems <= 0 disables the per-user limit.
func NewFoodService(foodRepository FoodRepository, maxItems int, log *logger.Logger) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		maxItems:       maxItems,
		log:            log.With("service", "food"),
		now:            time.Now,
	}
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	preparationDate, err := time.Parse(utils.DateLayout, req.PreparationDate)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrInvalidDate
	}
	if req.DaysToExpiry < 0 {
		return domain.FoodItemResponse{}, domain.ErrInvalidDaysToExpiry
	}

	if s.maxItems > 0 {
		count, err := s.foodRepository.CountFoodItems(ctx, userID)
		if err != nil {
			return domain.FoodItemResponse{}, err
		}
		if count >= int64(s.maxItems) {
			return domain.FoodItemResponse{}, domain.ErrItemLimitReached
		}
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = voice.CategoryFor(strings.ToLower(strings.TrimSpace(req.Name)))
	}

	foodItem := &entities.FoodItem{
		UserID:          userID,
		Name:            strings.TrimSpace(req.Name),
		Category:        category,
		PreparationDate: preparationDate,
		DaysToExpiry:    req.DaysToExpiry,
		ExpiryDate:      expiry.ExpiryDate(preparationDate, req.DaysToExpiry),
		Quantity:        req.Quantity,
		Location:        req.Location,
	}

	if err := s.foodRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}
	s.log.Debug("food item added", "user_id", userID, "id", foodItem.ID, "expiry_date", foodItem.ExpiryDate)

	return s.toResponse(foodItem), nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id uint, req domain.UpdateFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		foodItem.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		foodItem.Category = strings.TrimSpace(*req.Category)
	}
	if req.Quantity != nil {
		foodItem.Quantity = *req.Quantity
	}
	if req.Location != nil {
		foodItem.Location = *req.Location
	}

	recompute := false
	if req.PreparationDate != nil {
		preparationDate, err := time.Parse(utils.DateLayout, *req.PreparationDate)
		if err != nil {
			return domain.FoodItemResponse{}, domain.ErrInvalidDate
		}
		foodItem.PreparationDate = preparationDate
		recompute = true
	}
	if req.DaysToExpiry != nil {
		if *req.DaysToExpiry < 0 {
			return domain.FoodItemResponse{}, domain.ErrInvalidDaysToExpiry
		}
		foodItem.DaysToExpiry = *req.DaysToExpiry
		recompute = true
	}
	if recompute {
		foodItem.ExpiryDate = expiry.ExpiryDate(foodItem.PreparationDate, foodItem.DaysToExpiry)
	}

	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}
	return s.toResponse(foodItem), nil
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id uint, userID string) error {
	deleted, err := s.foodRepository.DeleteFoodItem(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrFoodItemNotFound
	}
	return nil
}

func (s *foodService) GetFoodItems(ctx context.Context, userID string, query domain.FoodItemsQuery) ([]domain.FoodItemResponse, error) {
	var (
		foodItems []*entities.FoodItem
		err       error
	)

	search := strings.TrimSpace(query.Search)
	if search != "" {
		foodItems, err = s.foodRepository.SearchFoodItems(ctx, userID, search)
		if err != nil {
			return nil, err
		}
		return s.toResponses(foodItems, nil), nil
	}

	var status *expiry.Status
	if query.Status != "" && query.Status != "all" {
		st, ok := expiry.ParseStatus(query.Status)
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		status = &st
	}

	foodItems, err = s.foodRepository.GetFoodItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(foodItems, status), nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id uint, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return s.toResponse(foodItem), nil
}

func (s *foodService) GetStats(ctx context.Context, userID string) (domain.FoodStatsResponse, error) {
	foodItems, err := s.foodRepository.GetFoodItems(ctx, userID)
	if err != nil {
		return domain.FoodStatsResponse{}, err
	}

	today := s.now()
	stats := domain.FoodStatsResponse{Total: len(foodItems)}
	for _, item := range foodItems {
		switch expiry.StatusOf(expiry.DaysUntil(item.ExpiryDate, today)) {
		case expiry.StatusExpired:
			stats.Expired++
		case expiry.StatusExpiring:
			stats.Expiring++
		default:
			stats.Fresh++
		}
	}
	return stats, nil
}

func (s *foodService) ListFoodRecords(ctx context.Context, userID string) ([]voice.FoodRecord, error) {
	foodItems, err := s.foodRepository.GetFoodItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list food items: %w", err)
	}

	records := make([]voice.FoodRecord, 0, len(foodItems))
	for _, item := range foodItems {
		records = append(records, voice.FoodRecord{
			Name:            item.Name,
			PreparationDate: item.PreparationDate,
			DaysToExpiry:    item.DaysToExpiry,
		})
	}
	return records, nil
}

func (s *foodService) getOwned(ctx context.Context, id uint, userID string) (*entities.FoodItem, error) {
	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}
	return foodItem, nil
}

// toResponses converts items, keeping only those with the given status when
// status is non-nil.
func (s *foodService) toResponses(foodItems []*entities.FoodItem, status *expiry.Status) []domain.FoodItemResponse {
	response := make([]domain.FoodItemResponse, 0, len(foodItems))
	for _, item := range foodItems {
		r := s.toResponse(item)
		if status != nil && r.Status != string(*status) {
			continue
		}
		response = append(response, r)
	}
	return response
}

func (s *foodService) toResponse(item *entities.FoodItem) domain.FoodItemResponse {
	daysLeft := expiry.DaysUntil(item.ExpiryDate, s.now())
	return domain.FoodItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Category:        item.Category,
		PreparationDate: item.PreparationDate.Format(utils.DateLayout),
		DaysToExpiry:    item.DaysToExpiry,
		ExpiryDate:      item.ExpiryDate.Format(utils.DateLayout),
		DaysLeft:        daysLeft,
		Status:          string(expiry.StatusOf(daysLeft)),
		Quantity:        item.Quantity,
		Location:        item.Location,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
