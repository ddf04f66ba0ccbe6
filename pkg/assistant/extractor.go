package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"Food-Tracker/domain"
	"Food-Tracker/pkg/voice"
)

const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const extractionPrompt = `Sei l'assistente di un inventario alimentare. Dal testo dettato in italiano qui sotto
estrai i dati di un alimento e rispondi SOLO con un oggetto JSON, senza testo aggiuntivo.

Campi (ometti quelli non presenti):
- name: nome dell'alimento, minuscolo
- category: una tra Latticini, Carne, Pesce, Frutta, Verdure, Cereali, Altro
- quantity: quantità, ad esempio "1L", "500g", "2 pz"
- location: una tra Frigorifero, Freezer, Dispensa
- daysToExpiry: giorni alla scadenza, solo il numero (un mese vale 30 giorni)

Esempio: "latte che scade tra 5 giorni" -> {"name": "latte", "category": "Latticini", "daysToExpiry": 5}

Testo: %q`

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Extractor reads a structured food record out of a free-form transcript.
type Extractor interface {
	Extract(ctx context.Context, transcript string) (voice.ParsedFoodRecord, error)
}

type (
	GeminiConfig struct {
		APIKey  string
		Model   string
		BaseURL string
		Timeout time.Duration
	}

	geminiExtractor struct {
		config     GeminiConfig
		httpClient *http.Client
	}
)

func NewGeminiExtractor(config GeminiConfig) Extractor {
	if config.BaseURL == "" {
		config.BaseURL = DefaultGeminiBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &geminiExtractor{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

func (g *geminiExtractor) Extract(ctx context.Context, transcript string) (voice.ParsedFoodRecord, error) {
	text, err := g.generate(ctx, fmt.Sprintf(extractionPrompt, transcript))
	if err != nil {
		return voice.ParsedFoodRecord{}, err
	}
	return decodeExtraction(text)
}

func (g *geminiExtractor) generate(ctx context.Context, prompt string) (string, error) {
	geminiURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(g.config.BaseURL, "/"), g.config.Model, g.config.APIKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      0.1,
			"responseMimeType": "application/json",
		},
	}
	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiURL, bytes.NewReader(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrExtractionFailed
	}
	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// decodeExtraction accepts the model output with or without markdown fences
// and keeps only fields that fit a parsed record.
func decodeExtraction(text string) (voice.ParsedFoodRecord, error) {
	if m := jsonObjectPattern.FindString(text); m != "" {
		text = m
	}

	var raw struct {
		Name         string      `json:"name"`
		Category     string      `json:"category"`
		Quantity     string      `json:"quantity"`
		Location     string      `json:"location"`
		DaysToExpiry interface{} `json:"daysToExpiry"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return voice.ParsedFoodRecord{}, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	rec := voice.ParsedFoodRecord{
		Name:     strings.ToLower(strings.TrimSpace(raw.Name)),
		Quantity: strings.TrimSpace(raw.Quantity),
	}
	if rec.Name == "" {
		return voice.ParsedFoodRecord{}, domain.ErrExtractionFailed
	}

	rec.Category = strings.TrimSpace(raw.Category)
	if !isKnownCategory(rec.Category) {
		rec.Category = voice.CategoryFor(rec.Name)
	}

	switch loc := strings.TrimSpace(raw.Location); loc {
	case voice.LocationFridge, voice.LocationFreezer, voice.LocationPantry:
		rec.Location = loc
	}

	if days := toDays(raw.DaysToExpiry); days > 0 {
		rec.DaysToExpiry = days
	}
	return rec, nil
}

func toDays(v interface{}) int {
	switch d := v.(type) {
	case float64:
		return int(d)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(d))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func isKnownCategory(category string) bool {
	for _, c := range voice.Categories() {
		if c == category {
			return true
		}
	}
	return false
}
