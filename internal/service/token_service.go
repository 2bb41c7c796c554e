package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/profile-push-service/internal/domain"
	"github.com/spec-kit/profile-push-service/internal/repository"
	apperrors "github.com/spec-kit/profile-push-service/pkg/util/errorutil"
)

// TokenService rewrites the push token stored on a caller's profiles.
type TokenService struct {
	store      repository.DocumentStore
	collection string
	logger     *zap.Logger
}

// NewTokenService builds the service for the given user collection.
func NewTokenService(store repository.DocumentStore, collection string, logger *zap.Logger) *TokenService {
	return &TokenService{store: store, collection: collection, logger: logger}
}

// UpdatePushToken sets the push token on every profile whose uid is the
// caller's, committing all updates together. It returns the number of
// profiles updated. Store errors are returned unchanged.
func (s *TokenService) UpdatePushToken(ctx context.Context, uid, token string) (int, error) {
	if uid == "" {
		return 0, apperrors.NewUnauthorized("caller identity required")
	}

	docs, err := s.store.QueryByField(ctx, s.collection, domain.FieldUID, uid)
	if err != nil {
		return 0, fmt.Errorf("query profiles by uid: %w", err)
	}
	if len(docs) == 0 {
		s.logger.Debug("no profiles for uid", zap.String("uid", uid))
		return 0, nil
	}

	batch := s.store.NewBatch()
	for _, doc := range docs {
		batch.Update(
			repository.DocumentRef{Collection: s.collection, ID: doc.ID},
			map[string]any{domain.FieldPushToken: token},
		)
	}
	if err := batch.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit push token updates: %w", err)
	}

	s.logger.Info("push token updated", zap.String("uid", uid), zap.Int("profiles", len(docs)))
	return len(docs), nil
}
