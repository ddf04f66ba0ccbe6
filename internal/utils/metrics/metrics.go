package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TranscriptsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_transcripts_handled_total",
			Help: "Transcripts handled by the voice assistant, by outcome kind",
		},
		[]string{"source", "kind"},
	)

	TranscriptionCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_transcription_cache_lookups_total",
			Help: "Transcript cache lookups for uploaded audio",
		},
		[]string{"result"},
	)

	TranscriptionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voice_transcription_duration_seconds",
			Help:    "Duration of speech-to-text calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	FoodItemsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "food_items_created_total",
			Help: "Food items created, by origin",
		},
		[]string{"origin"},
	)
)
