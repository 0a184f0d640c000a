package profile

import (
	"context"

	"storefront-client/internal/logger"

	"go.uber.org/zap"
)

type Backend interface {
	GetProfile(ctx context.Context) (Profile, error)
}

type Service interface {
	Get(ctx context.Context) (Profile, error)
}

type service struct {
	backend Backend
}

func NewService(backend Backend) Service {
	return &service{backend: backend}
}

// Get loads the profile of the logged-in user.
func (s *service) Get(ctx context.Context) (Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "profile"),
		zap.String("method", "Get"),
	)

	p, err := s.backend.GetProfile(ctx)
	if err != nil {
		log.Error("failed to load profile", zap.Error(err))
		return Profile{}, err
	}

	log.Debug("profile loaded", zap.String("role", p.Role))
	return p, nil
}
