package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

// サポート窓口への問い合わせ受付
type SupportUsecase struct {
	support repo.SupportRepository
	clock   Clock
	log     *zap.Logger
}

func NewSupportUsecase(support repo.SupportRepository, clock Clock, log *zap.Logger) *SupportUsecase {
	return &SupportUsecase{support: support, clock: clock, log: log}
}

func (u *SupportUsecase) Send(ctx context.Context, name, email, subject, message string) (model.SupportMessage, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(message) == "" {
		return model.SupportMessage{}, ErrValidation
	}

	msg, err := u.support.Append(ctx, model.SupportMessage{
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   message,
		Status:    model.SupportStatusNew,
		CreatedAt: u.clock.Now(),
	})
	if err != nil {
		return model.SupportMessage{}, err
	}
	u.log.Info("support message received", zap.Int64("id", msg.ID), zap.String("email", email))
	return msg, nil
}
