package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Food-Tracker/domain"
	"Food-Tracker/entities"
	"Food-Tracker/internal/utils"
	"Food-Tracker/internal/utils/logger"
	"Food-Tracker/pkg/assistant"
	"Food-Tracker/pkg/food"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testUser = "user-1"

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type stubTranscriber struct {
	text string
	err  error
}

func (s stubTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return s.text, s.err
}

func setupApp(t *testing.T, transcriber assistant.Transcriber) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&entities.FoodItem{}, &entities.VoiceSession{}))

	utils.InitValidator()
	log := logger.NewNop()
	foodService := food.NewFoodService(food.NewFoodRepository(db), 0, log)
	assistantService := assistant.NewAssistantService(
		foodService,
		assistant.NewVoiceSessionRepository(db),
		assistant.Options{Transcriber: transcriber},
		log,
	)

	foodHandler := NewFoodHandler(foodService, utils.Validate)
	voiceHandler := NewVoiceHandler(assistantService, utils.Validate)

	app := fiber.New(fiber.Config{BodyLimit: 12 << 20})
	api := app.Group("/", func(c *fiber.Ctx) error {
		c.Locals("user_id", testUser)
		return c.Next()
	})
	api.Get("/food-items/stats", foodHandler.GetStats)
	api.Post("/food-items", foodHandler.AddFoodItem)
	api.Get("/food-items", foodHandler.GetFoodItems)
	api.Get("/food-items/:id", foodHandler.GetFoodItemDetails)
	api.Put("/food-items/:id", foodHandler.UpdateFoodItem)
	api.Delete("/food-items/:id", foodHandler.DeleteFoodItem)
	api.Post("/voice/transcript", voiceHandler.HandleTranscript)
	api.Post("/voice/assistant", voiceHandler.HandleAudio)
	api.Get("/voice/test", voiceHandler.VoiceTest)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func today() string {
	return time.Now().Format(utils.DateLayout)
}

func TestFoodHandler_CRUD(t *testing.T) {
	app := setupApp(t, nil)

	status, env := doJSON(t, app, http.MethodPost, "/food-items", map[string]interface{}{
		"name": "Latte", "preparation_date": today(), "days_to_expiry": 2, "location": "Frigorifero",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	assert.Equal(t, "success", env.Status)

	var created domain.FoodItemResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Latticini", created.Category)
	assert.Equal(t, "expiring", created.Status)

	path := fmt.Sprintf("/food-items/%d", created.ID)

	status, env = doJSON(t, app, http.MethodPut, path, map[string]interface{}{"days_to_expiry": 30})
	require.Equal(t, http.StatusOK, status, env.Error)
	var updated domain.FoodItemResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "fresh", updated.Status)

	status, _ = doJSON(t, app, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = doJSON(t, app, http.MethodGet, "/food-items?status=fresh", nil)
	require.Equal(t, http.StatusOK, status)
	var items []domain.FoodItemResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 1)

	status, env = doJSON(t, app, http.MethodGet, "/food-items/stats", nil)
	require.Equal(t, http.StatusOK, status)
	var stats domain.FoodStatsResponse
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, domain.FoodStatsResponse{Total: 1, Fresh: 1}, stats)

	status, _ = doJSON(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = doJSON(t, app, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, domain.ErrFoodItemNotFound.Error(), env.Error)
}

func TestFoodHandler_BadRequests(t *testing.T) {
	app := setupApp(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"missing name", http.MethodPost, "/food-items", map[string]interface{}{"preparation_date": today()}},
		{"bad date", http.MethodPost, "/food-items", map[string]interface{}{"name": "pane", "preparation_date": "10/06/2024"}},
		{"negative days", http.MethodPost, "/food-items", map[string]interface{}{"name": "pane", "preparation_date": today(), "days_to_expiry": -1}},
		{"bad id", http.MethodGet, "/food-items/abc", nil},
		{"bad status", http.MethodGet, "/food-items?status=rotten", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doJSON(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "error", env.Status)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/food-items", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	status, env := send(t, app, req)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.MessageFailedBodyRequest, env.Message)
}

func TestVoiceHandler_Transcript(t *testing.T) {
	app := setupApp(t, nil)

	status, env := doJSON(t, app, http.MethodPost, "/voice/transcript", map[string]interface{}{
		"transcript": "latte che scade tra 5 giorni", "auto_submit": true,
	})
	require.Equal(t, http.StatusOK, status, env.Error)

	var res domain.VoiceResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, domain.VoiceKindFood, res.Kind)
	assert.Equal(t, 5, res.ParsedData.DaysToExpiry)
	require.NotNil(t, res.CreatedItem)

	status, env = doJSON(t, app, http.MethodPost, "/voice/transcript", map[string]interface{}{"transcript": "cosa scade oggi?"})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, domain.VoiceKindQuery, res.Kind)
	assert.Equal(t, "✅ Nessun alimento scade oggi!", res.Answer.Message)

	status, _ = doJSON(t, app, http.MethodPost, "/voice/transcript", map[string]interface{}{"transcript": ""})
	assert.Equal(t, http.StatusBadRequest, status)
}

func audioRequest(t *testing.T, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio", "recording.webm")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/voice/assistant", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestVoiceHandler_Audio(t *testing.T) {
	app := setupApp(t, stubTranscriber{text: "pollo nel freezer per due mesi"})

	status, env := send(t, app, audioRequest(t, []byte("audio")))
	require.Equal(t, http.StatusOK, status, env.Error)

	var res domain.VoiceResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "pollo nel freezer per due mesi", res.Transcript)
	assert.Equal(t, 60, res.ParsedData.DaysToExpiry)
	assert.NotEmpty(t, res.SessionID)
}

func TestVoiceHandler_AudioErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		app := setupApp(t, stubTranscriber{text: "latte"})
		req := httptest.NewRequest(http.MethodPost, "/voice/assistant", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
		status, env := send(t, app, req)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Nessun file audio fornito", env.Error)
	})

	t.Run("too large", func(t *testing.T) {
		app := setupApp(t, stubTranscriber{text: "latte"})
		status, _ := send(t, app, audioRequest(t, make([]byte, domain.MaxAudioSize+1)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	})

	t.Run("transcription failure", func(t *testing.T) {
		app := setupApp(t, stubTranscriber{err: errors.New("speech unavailable")})
		status, env := send(t, app, audioRequest(t, []byte("audio")))
		assert.Equal(t, http.StatusBadGateway, status)
		assert.Equal(t, domain.MessageFailedVoiceAudio, env.Message)
	})

	t.Run("no transcriber", func(t *testing.T) {
		app := setupApp(t, nil)
		status, _ := send(t, app, audioRequest(t, []byte("audio")))
		assert.Equal(t, http.StatusServiceUnavailable, status)
	})
}

func TestVoiceHandler_Test(t *testing.T) {
	status, env := doJSON(t, setupApp(t, nil), http.MethodGet, "/voice/test", nil)
	require.Equal(t, http.StatusOK, status)

	var res domain.VoiceResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "test latte 5 giorni", res.Transcript)
	assert.Equal(t, "latte", res.ParsedData.Name)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrFoodItemNotFound))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrItemLimitReached))
	assert.Equal(t, http.StatusBadGateway, statusFor(fmt.Errorf("%w: timeout", domain.ErrTranscriptionFailed)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}
