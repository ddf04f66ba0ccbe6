package digest

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"Food-Tracker/internal/utils/logger"
	"Food-Tracker/internal/utils/mailing"
	"Food-Tracker/pkg/voice"
)

type (
	// RecordSource lists a user's food for the digest.
	RecordSource interface {
		ListFoodRecords(ctx context.Context, userID string) ([]voice.FoodRecord, error)
	}

	DigestService interface {
		// SendDigest mails the user's upcoming expiries and reports whether a
		// message was sent; nothing is sent when nothing expires soon.
		SendDigest(ctx context.Context, userID string, email string) (bool, error)
	}

	digestService struct {
		source RecordSource
		mailer mailing.Mailer
		log    *logger.Logger
		now    func() time.Time
	}
)

func NewDigestService(source RecordSource, mailer mailing.Mailer, log *logger.Logger) DigestService {
	return &digestService{
		source: source,
		mailer: mailer,
		log:    log.With("service", "digest"),
		now:    time.Now,
	}
}

func (s *digestService) SendDigest(ctx context.Context, userID string, email string) (bool, error) {
	records, err := s.source.ListFoodRecords(ctx, userID)
	if err != nil {
		return false, err
	}

	answer, count := voice.Overview(records, s.now())
	if count == 0 {
		s.log.Info("digest skipped, nothing expiring", "user_id", userID)
		return false, nil
	}

	subject := fmt.Sprintf("Food Tracker: %s", answer.Summary)
	if err := s.mailer.SendMail(email, subject, renderBody(answer)); err != nil {
		return false, fmt.Errorf("send digest: %w", err)
	}
	s.log.Info("digest sent", "user_id", userID, "items", count)
	return true, nil
}

func renderBody(answer voice.QueryAnswer) string {
	var b strings.Builder
	b.WriteString("<h2>Alimenti in scadenza</h2>\n")
	for _, paragraph := range strings.Split(answer.Message, "\n\n") {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(paragraph))
		b.WriteString("</p>\n")
	}
	return b.String()
}
