package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddFoodItem    = "food item added successfully"
	MessageSuccessUpdateFoodItem = "food item updated successfully"
	MessageSuccessDeleteFoodItem = "food item deleted successfully"
	MessageSuccessGetFoodItems   = "food items retrieved successfully"
	MessageSuccessGetStats       = "food item statistics retrieved successfully"

	MessageFailedAddFoodItem    = "failed to add food item"
	MessageFailedUpdateFoodItem = "failed to update food item"
	MessageFailedDeleteFoodItem = "failed to delete food item"
	MessageFailedGetFoodItems   = "failed to retrieve food items"
	MessageFailedGetStats       = "failed to retrieve food item statistics"

	ErrFoodItemNotFound    = errors.New("food item not found")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidDaysToExpiry = errors.New("days to expiry must not be negative")
	ErrInvalidStatus       = errors.New("status must be one of all, expired, expiring, fresh")
	ErrItemLimitReached    = errors.New("maximum number of food items reached")
)

type (
	AddFoodItemRequest struct {
		Name            string `json:"name" validate:"required,max=255"`
		Category        string `json:"category" validate:"omitempty,max=100"`
		PreparationDate string `json:"preparation_date" validate:"required,calendar_date"`
		DaysToExpiry    int    `json:"days_to_expiry" validate:"min=0"`
		Quantity        string `json:"quantity" validate:"omitempty,max=100"`
		Location        string `json:"location" validate:"omitempty,max=255"`
	}

	UpdateFoodItemRequest struct {
		Name            *string `json:"name" validate:"omitempty,min=1,max=255"`
		Category        *string `json:"category" validate:"omitempty,max=100"`
		PreparationDate *string `json:"preparation_date" validate:"omitempty,calendar_date"`
		DaysToExpiry    *int    `json:"days_to_expiry" validate:"omitempty,min=0"`
		Quantity        *string `json:"quantity" validate:"omitempty,max=100"`
		Location        *string `json:"location" validate:"omitempty,max=255"`
	}

	FoodItemResponse struct {
		ID              uint      `json:"id"`
		Name            string    `json:"name"`
		Category        string    `json:"category,omitempty"`
		PreparationDate string    `json:"preparation_date"`
		DaysToExpiry    int       `json:"days_to_expiry"`
		ExpiryDate      string    `json:"expiry_date"`
		DaysLeft        int       `json:"days_left"`
		Status          string    `json:"status"`
		Quantity        string    `json:"quantity,omitempty"`
		Location        string    `json:"location,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
		UpdatedAt       time.Time `json:"updated_at"`
	}

	FoodItemsQuery struct {
		Search string
		Status string
	}

	FoodStatsResponse struct {
		Total    int `json:"total"`
		Expired  int `json:"expired"`
		Expiring int `json:"expiring"`
		Fresh    int `json:"fresh"`
	}
)
