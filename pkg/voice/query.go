package voice

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"Food-Tracker/pkg/expiry"
)

const (
	KindExpiryCheck = "expiry_check"
	KindError       = "error"
)

type (
	// FoodRecord is the read-only view of a stored item the resolver needs.
	FoodRecord struct {
		Name            string
		PreparationDate time.Time
		DaysToExpiry    int
	}

	QueryAnswer struct {
		Kind    string `json:"type"`
		Message string `json:"message"`
		Summary string `json:"summary"`
	}

	// ItemSource loads the records a question is answered from.
	ItemSource interface {
		ListFoodRecords(ctx context.Context) ([]FoodRecord, error)
	}

	// ItemSourceFunc adapts a plain function to ItemSource.
	ItemSourceFunc func(ctx context.Context) ([]FoodRecord, error)
)

func (f ItemSourceFunc) ListFoodRecords(ctx context.Context) ([]FoodRecord, error) {
	return f(ctx)
}

var questionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)cosa.*scade.*oggi`),
	regexp.MustCompile(`(?i)quali.*scade.*oggi`),
	regexp.MustCompile(`(?i)quali.*alimenti.*scade`),
	regexp.MustCompile(`(?i)quali.*alimenti.*scadono`),
	regexp.MustCompile(`(?i)cosa.*scadenza.*oggi`),
	regexp.MustCompile(`(?i)alimenti.*scade.*oggi`),
	regexp.MustCompile(`(?i)cosa.*sta.*scadendo`),
	regexp.MustCompile(`(?i)quali.*stanno.*scadendo`),
	regexp.MustCompile(`(?i)cosa.*scade.*domani`),
	regexp.MustCompile(`(?i)cosa.*scade.*fra`),
	regexp.MustCompile(`(?i)quali.*scade.*fra`),
	regexp.MustCompile(`(?i)quali.*scadono.*fra`),
	regexp.MustCompile(`(?i)alimenti.*scadenza`),
	regexp.MustCompile(`(?i)lista.*scadenza`),
	regexp.MustCompile(`(?i)controlla.*scadenza`),
	regexp.MustCompile(`(?i)dimmi.*cosa.*scade`),
	regexp.MustCompile(`(?i)dimmi.*quali.*scade`),
}

var errorAnswer = QueryAnswer{
	Kind:    KindError,
	Message: "Errore nel controllare le scadenze. Riprova più tardi.",
	Summary: "Errore di connessione",
}

// IsQuestion reports whether the transcript asks about expiring items
// rather than describing an item to add.
func IsQuestion(transcript string) bool {
	text := strings.ToLower(transcript)
	for _, p := range questionPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// ResolveQuery answers an expiry question from items as of today. It returns
// nil when the transcript is not a question.
func ResolveQuery(transcript string, items []FoodRecord, today time.Time) *QueryAnswer {
	if !IsQuestion(transcript) {
		return nil
	}
	answer := answerFrom(strings.ToLower(transcript), items, today)
	return &answer
}

// ResolveQueryFrom is ResolveQuery with the items loaded from source. The
// source is only read for questions; a read failure is reported as an
// error-kind answer, never as an error.
func ResolveQueryFrom(ctx context.Context, transcript string, source ItemSource, today time.Time) *QueryAnswer {
	if !IsQuestion(transcript) {
		return nil
	}
	items, err := source.ListFoodRecords(ctx)
	if err != nil {
		answer := errorAnswer
		return &answer
	}
	answer := answerFrom(strings.ToLower(transcript), items, today)
	return &answer
}

type buckets struct {
	today, tomorrow, soon []string
}

func (b buckets) total() int {
	return len(b.today) + len(b.tomorrow) + len(b.soon)
}

func bucketItems(items []FoodRecord, today time.Time) buckets {
	var b buckets
	for _, item := range items {
		diff := expiry.DaysUntilExpiry(item.PreparationDate, item.DaysToExpiry, today)
		switch expiry.BucketOf(diff) {
		case expiry.BucketToday:
			b.today = append(b.today, item.Name)
		case expiry.BucketTomorrow:
			b.tomorrow = append(b.tomorrow, item.Name)
		case expiry.BucketSoon:
			b.soon = append(b.soon, item.Name)
		}
	}
	return b
}

func answerFrom(text string, items []FoodRecord, today time.Time) QueryAnswer {
	b := bucketItems(items, today)

	switch {
	case strings.Contains(text, "oggi"):
		if len(b.today) == 0 {
			return expiryCheck("✅ Nessun alimento scade oggi!", "Nessuna scadenza oggi")
		}
		return expiryCheck(
			"⚠️ Oggi scade: "+strings.Join(b.today, ", "),
			fmt.Sprintf("%d alimento/i in scadenza oggi", len(b.today)),
		)
	case strings.Contains(text, "domani"):
		if len(b.tomorrow) == 0 {
			return expiryCheck("✅ Nessun alimento scade domani!", "Nessuna scadenza domani")
		}
		return expiryCheck(
			"⚠️ Domani scade: "+strings.Join(b.tomorrow, ", "),
			fmt.Sprintf("%d alimento/i scade domani", len(b.tomorrow)),
		)
	default:
		return overview(b)
	}
}

func overview(b buckets) QueryAnswer {
	if b.total() == 0 {
		return expiryCheck("✅ Tutti gli alimenti sono freschi!", "Nessuna scadenza imminente")
	}

	var parts []string
	if len(b.today) > 0 {
		parts = append(parts, "⚠️ Oggi: "+strings.Join(b.today, ", "))
	}
	if len(b.tomorrow) > 0 {
		parts = append(parts, "📅 Domani: "+strings.Join(b.tomorrow, ", "))
	}
	if len(b.soon) > 0 {
		parts = append(parts, "⏰ Prossimi giorni: "+strings.Join(b.soon, ", "))
	}
	return expiryCheck(
		strings.Join(parts, "\n\n"),
		fmt.Sprintf("%d alimento/i in scadenza", b.total()),
	)
}

// Overview summarises every item expiring within the soon threshold,
// regardless of how a question was phrased.
func Overview(items []FoodRecord, today time.Time) (QueryAnswer, int) {
	b := bucketItems(items, today)
	return overview(b), b.total()
}

func expiryCheck(message, summary string) QueryAnswer {
	return QueryAnswer{Kind: KindExpiryCheck, Message: message, Summary: summary}
}
