package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"Food-Tracker/domain"
	"Food-Tracker/entities"
	"Food-Tracker/internal/utils"
	"Food-Tracker/internal/utils/logger"
	"Food-Tracker/internal/utils/metrics"
	"Food-Tracker/internal/utils/storage"
	"Food-Tracker/pkg/food"
	"Food-Tracker/pkg/voice"

	"github.com/google/uuid"
)

type (
	AssistantService interface {
		HandleTranscript(ctx context.Context, userID string, req domain.VoiceTranscriptRequest) (domain.VoiceResponse, error)
		ProcessAudio(ctx context.Context, userID string, req domain.VoiceAudioRequest) (domain.VoiceResponse, error)
	}

	// Options holds the optional collaborators of the audio path. A nil
	// Transcriber disables audio uploads; the others are skipped when nil.
	Options struct {
		Transcriber Transcriber
		Cache       TranscriptCache
		Extractor   Extractor
		Archive     storage.AwsS3
	}

	assistantService struct {
		foodService food.FoodService
		sessions    VoiceSessionRepository
		transcriber Transcriber
		cache       TranscriptCache
		extractor   Extractor
		archive     storage.AwsS3
		log         *logger.Logger
		now         func() time.Time
	}
)

func NewAssistantService(foodService food.FoodService, sessions VoiceSessionRepository, opts Options, log *logger.Logger) AssistantService {
	return &assistantService{
		foodService: foodService,
		sessions:    sessions,
		transcriber: opts.Transcriber,
		cache:       opts.Cache,
		extractor:   opts.Extractor,
		archive:     opts.Archive,
		log:         log.With("service", "assistant"),
		now:         time.Now,
	}
}

func (s *assistantService) HandleTranscript(ctx context.Context, userID string, req domain.VoiceTranscriptRequest) (domain.VoiceResponse, error) {
	transcript := strings.TrimSpace(req.Transcript)
	return s.respond(ctx, userID, transcript, req.AutoSubmit, domain.VoiceSourceBrowser, func(_ context.Context, t string) voice.ParsedFoodRecord {
		return voice.Parse(t)
	})
}

func (s *assistantService) ProcessAudio(ctx context.Context, userID string, req domain.VoiceAudioRequest) (domain.VoiceResponse, error) {
	if req.Audio == nil || req.Audio.Size == 0 {
		return domain.VoiceResponse{}, domain.ErrAudioMissing
	}
	if req.Audio.Size > domain.MaxAudioSize {
		return domain.VoiceResponse{}, domain.ErrAudioTooLarge
	}
	if s.transcriber == nil {
		return domain.VoiceResponse{}, domain.ErrTranscriberDisabled
	}

	file, err := req.Audio.Open()
	if err != nil {
		return domain.VoiceResponse{}, fmt.Errorf("open audio: %w", err)
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, domain.MaxAudioSize+1))
	if err != nil {
		return domain.VoiceResponse{}, fmt.Errorf("read audio: %w", err)
	}
	if len(audio) == 0 {
		return domain.VoiceResponse{}, domain.ErrAudioMissing
	}
	if len(audio) > domain.MaxAudioSize {
		return domain.VoiceResponse{}, domain.ErrAudioTooLarge
	}

	mimeType := req.Audio.Header.Get("Content-Type")
	session := &entities.VoiceSession{
		ID:        uuid.New(),
		UserID:    userID,
		AudioHash: AudioHash(audio),
		Status:    domain.VoiceSessionProcessed,
	}
	s.archiveAudio(ctx, session, audio, mimeType)

	transcript, source, err := s.transcribe(ctx, audio, mimeType, session.AudioHash)
	if err != nil {
		session.Status = domain.VoiceSessionFailed
		session.Error = err.Error()
		s.saveSession(ctx, session)
		s.log.Error("transcription failed", "user_id", userID, "session_id", session.ID, "error", err)
		return domain.VoiceResponse{}, fmt.Errorf("%w: %v", domain.ErrTranscriptionFailed, err)
	}
	session.Transcript = transcript
	session.Source = source
	s.saveSession(ctx, session)

	res, err := s.respond(ctx, userID, transcript, req.AutoSubmit, domain.VoiceSourceAudio, s.extract)
	res.SessionID = session.ID.String()
	return res, err
}

// respond answers expiry questions first and only then treats the transcript
// as a food to add.
func (s *assistantService) respond(
	ctx context.Context,
	userID, transcript string,
	autoSubmit bool,
	source string,
	extract func(context.Context, string) voice.ParsedFoodRecord,
) (domain.VoiceResponse, error) {
	res := domain.VoiceResponse{Transcript: transcript}

	items := voice.ItemSourceFunc(func(ctx context.Context) ([]voice.FoodRecord, error) {
		return s.foodService.ListFoodRecords(ctx, userID)
	})
	if ans := voice.ResolveQueryFrom(ctx, transcript, items, s.now()); ans != nil {
		res.Kind = domain.VoiceKindQuery
		res.Answer = &domain.VoiceAnswer{Type: ans.Kind, Message: ans.Message, Summary: ans.Summary}
		metrics.TranscriptsHandled.WithLabelValues(source, res.Kind).Inc()
		return res, nil
	}

	rec := extract(ctx, transcript)
	if rec.IsEmpty() {
		res.Kind = domain.VoiceKindUnrecognized
		metrics.TranscriptsHandled.WithLabelValues(source, res.Kind).Inc()
		return res, nil
	}

	res.Kind = domain.VoiceKindFood
	res.ParsedData = &domain.ParsedFoodData{
		Name:         rec.Name,
		Category:     rec.Category,
		DaysToExpiry: rec.DaysToExpiry,
		Location:     rec.Location,
		Quantity:     rec.Quantity,
	}
	metrics.TranscriptsHandled.WithLabelValues(source, res.Kind).Inc()

	if !autoSubmit || !rec.CanAutoSubmit() {
		return res, nil
	}

	item, err := s.foodService.AddFoodItem(ctx, domain.AddFoodItemRequest{
		Name:            rec.Name,
		Category:        rec.Category,
		PreparationDate: s.now().Format(utils.DateLayout),
		DaysToExpiry:    rec.DaysToExpiry,
		Quantity:        rec.Quantity,
		Location:        rec.Location,
	}, userID)
	if err != nil {
		return res, err
	}
	res.CreatedItem = &item
	metrics.FoodItemsCreated.WithLabelValues(source).Inc()
	return res, nil
}

func (s *assistantService) transcribe(ctx context.Context, audio []byte, mimeType, hash string) (string, string, error) {
	if s.cache != nil {
		transcript, ok, err := s.cache.Get(ctx, hash)
		switch {
		case err != nil:
			metrics.TranscriptionCacheLookups.WithLabelValues("error").Inc()
			s.log.Warn("transcript cache lookup failed", "error", err)
		case ok:
			metrics.TranscriptionCacheLookups.WithLabelValues("hit").Inc()
			return transcript, domain.TranscriptSourceCache, nil
		default:
			metrics.TranscriptionCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	transcript, err := s.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return "", "", err
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", "", errors.New("empty transcript")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, hash, transcript); err != nil {
			s.log.Warn("transcript cache store failed", "error", err)
		}
	}
	return transcript, domain.TranscriptSourceSpeech, nil
}

// extract prefers the remote extractor and falls back to the local parser on
// any failure.
func (s *assistantService) extract(ctx context.Context, transcript string) voice.ParsedFoodRecord {
	if s.extractor == nil {
		return voice.Parse(transcript)
	}
	rec, err := s.extractor.Extract(ctx, transcript)
	if err != nil {
		s.log.Warn("extractor failed, using local parser", "error", err)
		return voice.Parse(transcript)
	}
	return rec
}

func (s *assistantService) archiveAudio(ctx context.Context, session *entities.VoiceSession, audio []byte, mimeType string) {
	if s.archive == nil {
		return
	}
	key := fmt.Sprintf("voice/%s/%s%s", session.UserID, session.ID, audioExtension(mimeType))
	if _, err := s.archive.UploadFile(ctx, key, audio, mimeType, storage.AllowAudio...); err != nil {
		s.log.Warn("audio archive failed", "key", key, "error", err)
		return
	}
	session.AudioURL = s.archive.GetPublicLinkKey(key)
}

func (s *assistantService) saveSession(ctx context.Context, session *entities.VoiceSession) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.CreateVoiceSession(ctx, session); err != nil {
		s.log.Warn("voice session not stored", "session_id", session.ID, "error", err)
	}
}

func audioExtension(mimeType string) string {
	m := strings.ToLower(mimeType)
	switch {
	case strings.Contains(m, "webm"):
		return ".webm"
	case strings.Contains(m, "ogg"):
		return ".ogg"
	case strings.Contains(m, "wav"):
		return ".wav"
	case strings.Contains(m, "flac"):
		return ".flac"
	case strings.Contains(m, "mpeg"), strings.Contains(m, "mp3"):
		return ".mp3"
	default:
		return ""
	}
}
