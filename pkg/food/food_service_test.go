package food

import (
	"context"
	"testing"
	"time"

	"Food-Tracker/domain"
	"Food-Tracker/entities"
	"Food-Tracker/internal/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const userID = "user-1"

var fixedNow = time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entities.FoodItem{}))
	return db
}

func setupService(t *testing.T, maxItems int) FoodService {
	t.Helper()
	svc := NewFoodService(NewFoodRepository(setupDB(t)), maxItems, logger.NewNop())
	svc.(*foodService).now = func() time.Time { return fixedNow }
	return svc
}

// addExpiringIn stores an item that expires diff days after fixedNow.
func addExpiringIn(t *testing.T, svc FoodService, name string, diff int) domain.FoodItemResponse {
	t.Helper()
	res, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:            name,
		PreparationDate: fixedNow.AddDate(0, 0, diff-2).Format("2006-01-02"),
		DaysToExpiry:    2,
	}, userID)
	require.NoError(t, err)
	return res
}

func TestFoodService_AddFoodItem(t *testing.T) {
	svc := setupService(t, 0)

	res, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:            "Latte",
		PreparationDate: "2024-06-08",
		DaysToExpiry:    5,
		Quantity:        "1L",
		Location:        "Frigorifero",
	}, userID)
	require.NoError(t, err)

	assert.NotZero(t, res.ID)
	assert.Equal(t, "Latte", res.Name)
	assert.Equal(t, "Latticini", res.Category)
	assert.Equal(t, "2024-06-08", res.PreparationDate)
	assert.Equal(t, "2024-06-13", res.ExpiryDate)
	assert.Equal(t, 3, res.DaysLeft)
	assert.Equal(t, "expiring", res.Status)
	assert.Equal(t, "1L", res.Quantity)
}

func TestFoodService_AddFoodItem_KeepsGivenCategory(t *testing.T) {
	svc := setupService(t, 0)

	res, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name: "torta", Category: "Dolci", PreparationDate: "2024-06-10", DaysToExpiry: 2,
	}, userID)
	require.NoError(t, err)
	assert.Equal(t, "Dolci", res.Category)

	res, err = svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name: "broccoli", PreparationDate: "2024-06-10", DaysToExpiry: 2,
	}, userID)
	require.NoError(t, err)
	assert.Equal(t, "Altro", res.Category)
}

func TestFoodService_AddFoodItem_Invalid(t *testing.T) {
	svc := setupService(t, 0)
	ctx := context.Background()

	_, err := svc.AddFoodItem(ctx, domain.AddFoodItemRequest{Name: "pane", PreparationDate: "10/06/2024"}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = svc.AddFoodItem(ctx, domain.AddFoodItemRequest{Name: "pane", PreparationDate: "2024-06-10", DaysToExpiry: -1}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidDaysToExpiry)
}

func TestFoodService_AddFoodItem_Limit(t *testing.T) {
	svc := setupService(t, 2)
	ctx := context.Background()
	req := domain.AddFoodItemRequest{Name: "pane", PreparationDate: "2024-06-10", DaysToExpiry: 2}

	for i := 0; i < 2; i++ {
		_, err := svc.AddFoodItem(ctx, req, userID)
		require.NoError(t, err)
	}
	_, err := svc.AddFoodItem(ctx, req, userID)
	assert.ErrorIs(t, err, domain.ErrItemLimitReached)

	_, err = svc.AddFoodItem(ctx, req, "user-2")
	assert.NoError(t, err)
}

func TestFoodService_UpdateFoodItem(t *testing.T) {
	svc := setupService(t, 0)
	ctx := context.Background()
	created := addExpiringIn(t, svc, "latte", 5)

	days := 1
	res, err := svc.UpdateFoodItem(ctx, created.ID, domain.UpdateFoodItemRequest{DaysToExpiry: &days}, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.DaysToExpiry)
	assert.Equal(t, "2024-06-14", res.ExpiryDate)

	prep := "2024-06-01"
	location := "Freezer"
	res, err = svc.UpdateFoodItem(ctx, created.ID, domain.UpdateFoodItemRequest{PreparationDate: &prep, Location: &location}, userID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-02", res.ExpiryDate)
	assert.Equal(t, "expired", res.Status)
	assert.Equal(t, "Freezer", res.Location)

	stored, err := svc.GetFoodItemByID(ctx, created.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-02", stored.ExpiryDate)
}

func TestFoodService_UpdateFoodItem_Errors(t *testing.T) {
	svc := setupService(t, 0)
	ctx := context.Background()
	created := addExpiringIn(t, svc, "latte", 5)

	name := "yogurt"
	_, err := svc.UpdateFoodItem(ctx, created.ID, domain.UpdateFoodItemRequest{Name: &name}, "someone-else")
	assert.ErrorIs(t, err, domain.ErrFoodItemNotFound)

	bad := "yesterday"
	_, err = svc.UpdateFoodItem(ctx, created.ID, domain.UpdateFoodItemRequest{PreparationDate: &bad}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	negative := -2
	_, err = svc.UpdateFoodItem(ctx, created.ID, domain.UpdateFoodItemRequest{DaysToExpiry: &negative}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidDaysToExpiry)
}

func TestFoodService_DeleteFoodItem(t *testing.T) {
	svc := setupService(t, 0)
	ctx := context.Background()
	created := addExpiringIn(t, svc, "latte", 5)

	assert.ErrorIs(t, svc.DeleteFoodItem(ctx, created.ID, "someone-else"), domain.ErrFoodItemNotFound)
	require.NoError(t, svc.DeleteFoodItem(ctx, created.ID, userID))
	assert.ErrorIs(t, svc.DeleteFoodItem(ctx, created.ID, userID), domain.ErrFoodItemNotFound)

	_, err := svc.GetFoodItemByID(ctx, created.ID, userID)
	assert.ErrorIs(t, err, domain.ErrFoodItemNotFound)
}

func TestFoodService_GetFoodItems_StatusFilter(t *testing.T) {
	svc := setupService(t, 0)
	ctx := context.Background()
	addExpiringIn(t, svc, "fresco", 4)
	addExpiringIn(t, svc, "scaduto", -1)
	addExpiringIn(t, svc, "oggi", 0)
	addExpiringIn(t, svc, "limite", 3)

	names := func(items []domain.FoodItemResponse) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.Name)
		}
		return out
	}

	all, err := svc.GetFoodItems(ctx, userID, domain.FoodItemsQuery{Status: "all"})
	require.NoError(t, err)
	assert.Equal(t, []string{"scaduto", "oggi", "limite", "fresco"}, names(all))

	expired, err := svc.GetFoodItems(ctx, userID, domain.FoodItemsQuery{Status: "expired"})
	require.NoError(t, err)
	assert.Equal(t, []string{"scaduto"}, names(expired))

	expiring, err := svc.GetFoodItems(ctx, userID, domain.FoodItemsQuery{Status: "expiring"})
	require.NoError(t, err)
	assert.Equal(t, []string{"oggi", "limite"}, names(expiring))

	fresh, err := svc.GetFoodItems(ctx, userID, domain.FoodItemsQuery{Status: "fresh"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresco"}, names(fresh))

	_, err = svc.GetFoodItems(ctx, userID, domain.FoodItemsQuery{Status: "rotten"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestFoodService_GetFoodItems_Search(t *testing.T) {
	svc := setupService(t, 0)
	ctx := context.Background()

	_, err := svc.AddFoodItem(ctx, domain.AddFoodItemRequest{
		Name: "Mozzarella", PreparationDate: "2024-06-10", DaysToExpiry: 3, Location: "Frigorifero",
	}, userID)
	require.NoError(t, err)
	_, err = svc.AddFoodItem(ctx, domain.AddFoodItemRequest{
		Name: "Pasta", PreparationDate: "2024-06-10", DaysToExpiry: 300, Location: "Dispensa",
	}, userID)
	require.NoError(t, err)
	_, err = svc.AddFoodItem(ctx, domain.AddFoodItemRequest{
		Name: "Mozzarella", PreparationDate: "2024-06-10", DaysToExpiry: 3,
	}, "user-2")
	require.NoError(t, err)

	found, err := svc.GetFoodItems(ctx, userID, domain.FoodItemsQuery{Search: "FRIGO"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Mozzarella", found[0].Name)

	found, err = svc.GetFoodItems(ctx, userID, domain.FoodItemsQuery{Search: "cereali"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Pasta", found[0].Name)

	// search takes precedence over the status filter
	found, err = svc.GetFoodItems(ctx, userID, domain.FoodItemsQuery{Search: "pasta", Status: "expired"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestFoodService_GetStats(t *testing.T) {
	svc := setupService(t, 0)
	addExpiringIn(t, svc, "a", -3)
	addExpiringIn(t, svc, "b", 0)
	addExpiringIn(t, svc, "c", 2)
	addExpiringIn(t, svc, "d", 30)

	stats, err := svc.GetStats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, domain.FoodStatsResponse{Total: 4, Expired: 1, Expiring: 2, Fresh: 1}, stats)
}

func TestFoodService_ListFoodRecords(t *testing.T) {
	svc := setupService(t, 0)
	addExpiringIn(t, svc, "latte", 1)

	records, err := svc.ListFoodRecords(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "latte", records[0].Name)
	assert.Equal(t, 2, records[0].DaysToExpiry)
	assert.Equal(t, "2024-06-09", records[0].PreparationDate.Format("2006-01-02"))

	records, err = svc.ListFoodRecords(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, records)
}
