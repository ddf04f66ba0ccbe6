package assistant

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"Food-Tracker/internal/utils/logger"
	"Food-Tracker/internal/utils/metrics"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

const (
	DefaultSpeechLanguage = "it-IT"
	speechTimeout         = 30 * time.Second
)

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

type SpeechTranscriber struct {
	log      *logger.Logger
	client   *speech.Client
	language string
}

func NewSpeechTranscriber(ctx context.Context, language string, log *logger.Logger) (*SpeechTranscriber, error) {
	if language == "" {
		language = DefaultSpeechLanguage
	}

	c, err := speech.NewClient(ctx, clientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	return &SpeechTranscriber{
		log:      log.With("service", "speech"),
		client:   c,
		language: language,
	}, nil
}

func (s *SpeechTranscriber) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *SpeechTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, speechTimeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.Recognize(ctx, recognizeRequest(audio, mimeType, s.language))
	metrics.TranscriptionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("speech recognize: %w", err)
	}

	transcript := joinResults(resp)
	s.log.Debug("audio transcribed", "bytes", len(audio), "mime_type", mimeType, "chars", len(transcript))
	return transcript, nil
}

func recognizeRequest(audio []byte, mimeType, language string) *speechpb.RecognizeRequest {
	enc, sampleRate := inferEncoding(mimeType)
	return &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               language,
			Encoding:                   enc,
			SampleRateHertz:            sampleRate,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}
}

// inferEncoding maps an upload content type to a speech encoding. Opus
// containers need an explicit sample rate; the others carry it in a header.
func inferEncoding(mimeType string) (speechpb.RecognitionConfig_AudioEncoding, int32) {
	m := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.Contains(m, "webm"):
		return speechpb.RecognitionConfig_WEBM_OPUS, 48000
	case strings.Contains(m, "ogg") || strings.Contains(m, "opus"):
		return speechpb.RecognitionConfig_OGG_OPUS, 48000
	case strings.Contains(m, "wav"):
		return speechpb.RecognitionConfig_LINEAR16, 0
	case strings.Contains(m, "flac"):
		return speechpb.RecognitionConfig_FLAC, 0
	case strings.Contains(m, "mp3") || strings.Contains(m, "mpeg"):
		return speechpb.RecognitionConfig_MP3, 0
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, 0
	}
}

func joinResults(resp *speechpb.RecognizeResponse) string {
	if resp == nil {
		return ""
	}
	parts := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r == nil || len(r.Alternatives) == 0 || r.Alternatives[0] == nil {
			continue
		}
		if t := strings.TrimSpace(r.Alternatives[0].Transcript); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// clientOptionsFromEnv accepts either inline JSON credentials or a path to a
// credentials file; with neither set the default chain applies.
func clientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}
