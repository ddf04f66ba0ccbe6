package assistant

import (
	"context"

	"Food-Tracker/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	VoiceSessionRepository interface {
		CreateVoiceSession(ctx context.Context, session *entities.VoiceSession) error
		GetVoiceSessionByID(ctx context.Context, id uuid.UUID, userID string) (*entities.VoiceSession, error)
	}

	voiceSessionRepository struct {
		db *gorm.DB
	}
)

func NewVoiceSessionRepository(db *gorm.DB) VoiceSessionRepository {
	return &voiceSessionRepository{db: db}
}

func (r *voiceSessionRepository) CreateVoiceSession(ctx context.Context, session *entities.VoiceSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *voiceSessionRepository) GetVoiceSessionByID(ctx context.Context, id uuid.UUID, userID string) (*entities.VoiceSession, error) {
	var session entities.VoiceSession
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}
