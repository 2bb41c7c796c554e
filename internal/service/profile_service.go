package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spec-kit/profile-push-service/internal/domain"
	"github.com/spec-kit/profile-push-service/internal/repository"
)

// Envelope messages for create-profile.
const (
	MsgProfileNotProvided   = "Data not provided"
	MsgProfileIncomplete    = "Profile missing information"
	MsgProfileInserted      = "User profile inserted"
	MsgProfileNotInserted   = "Could not insert user profile"
	MsgProfileInsertFailed  = "Error inserting user — check logs"
	errorDetailMissingDocID = "docId"
)

// ProfileService creates user profile documents.
type ProfileService struct {
	store      repository.DocumentStore
	collection string
	logger     *zap.Logger
	validate   *validator.Validate
}

// NewProfileService builds the service for the given user collection.
func NewProfileService(store repository.DocumentStore, collection string, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		store:      store,
		collection: collection,
		logger:     logger,
		validate:   validator.New(),
	}
}

// CreateProfile stores a complete profile as a new document. Every outcome,
// including store failures, is reported through the returned envelope.
func (s *ProfileService) CreateProfile(ctx context.Context, profile domain.UserProfile) domain.Envelope {
	env := domain.NewErrorEnvelope(MsgProfileNotProvided)

	if err := s.validate.Struct(profile); err != nil {
		env.Fail(MsgProfileIncomplete, nil)
		return *env
	}

	id, err := s.store.Insert(ctx, s.collection, profile.Fields())
	switch {
	case err != nil:
		s.logger.Error("error inserting profile",
			zap.String("email", profile.EmailOrEmpty()),
			zap.Error(err))
		env.FailNull(MsgProfileInsertFailed)
	case id == "":
		env.Fail(MsgProfileNotInserted, domain.ErrorDetailPayload{ErrorDetail: errorDetailMissingDocID})
	default:
		env.Succeed(MsgProfileInserted, domain.DocCreatedPayload{DocID: id})
	}
	return *env
}
