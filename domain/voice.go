package domain

import (
	"errors"
	"mime/multipart"
)

const (
	VoiceKindQuery        = "query"
	VoiceKindFood         = "food"
	VoiceKindUnrecognized = "unrecognized"

	VoiceSourceBrowser = "browser"
	VoiceSourceAudio   = "audio"

	TranscriptSourceCache  = "cache"
	TranscriptSourceSpeech = "speech"

	VoiceSessionProcessed = "Processed"
	VoiceSessionFailed    = "Failed"

	// MaxAudioSize bounds uploaded recordings.
	MaxAudioSize = 10 << 20
)

var (
	MessageSuccessVoiceTranscript = "transcript processed successfully"
	MessageSuccessVoiceAudio      = "audio processed successfully"

	MessageFailedVoiceTranscript = "failed to process transcript"
	MessageFailedVoiceAudio      = "Errore nell'elaborazione dell'audio"

	ErrAudioMissing        = errors.New("Nessun file audio fornito")
	ErrAudioTooLarge       = errors.New("audio file exceeds 10MB")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrTranscriberDisabled = errors.New("speech transcription is not configured")
	ErrExtractionFailed    = errors.New("Errore nell'analisi del testo")
)

type (
	VoiceTranscriptRequest struct {
		Transcript string `json:"transcript" validate:"required,max=1000"`
		AutoSubmit bool   `json:"auto_submit"`
	}

	VoiceAudioRequest struct {
		Audio      *multipart.FileHeader `form:"audio" validate:"required"`
		AutoSubmit bool                  `form:"auto_submit"`
	}

	ParsedFoodData struct {
		Name         string `json:"name,omitempty"`
		Category     string `json:"category,omitempty"`
		DaysToExpiry int    `json:"daysToExpiry,omitempty"`
		Location     string `json:"location,omitempty"`
		Quantity     string `json:"quantity,omitempty"`
	}

	VoiceAnswer struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Summary string `json:"summary"`
	}

	VoiceResponse struct {
		Transcript  string            `json:"transcript"`
		Kind        string            `json:"kind"`
		Answer      *VoiceAnswer      `json:"answer,omitempty"`
		ParsedData  *ParsedFoodData   `json:"parsedData,omitempty"`
		CreatedItem *FoodItemResponse `json:"created_item,omitempty"`
		SessionID   string            `json:"session_id,omitempty"`
	}
)
