package usecase

import (
	"context"
	"net/http"

	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/apperror"
	"candidate-voting-backend/pkg/audit"
	"candidate-voting-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type candidateUsecase struct {
	repo     domain.CandidateRepository
	validate *validator.Validate
	audit    *audit.Logger
}

func NewCandidateUsecase(repo domain.CandidateRepository, validate *validator.Validate, auditLog *audit.Logger) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:     repo,
		validate: validate,
		audit:    auditLog,
	}
}

// candidateID normalises a path id. Anything that is not a UUID cannot name
// a stored candidate, so it is reported the same way as a missing one.
func candidateID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperror.NotFound(domain.MsgCandidateNotFound)
	}
	return parsed.String(), nil
}

func (u *candidateUsecase) List(ctx context.Context) ([]domain.CandidateSummary, error) {
	candidates, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.CandidateSummary, 0, len(candidates))
	for _, c := range candidates {
		summaries = append(summaries, c.Summary())
	}
	return summaries, nil
}

// Get records the visitor's view before reading, so the returned counts include it.
func (u *candidateUsecase) Get(ctx context.Context, id, visitor string) (*domain.CandidateDetail, error) {
	id, err := candidateID(id)
	if err != nil {
		return nil, err
	}

	if err := u.repo.RecordView(ctx, id, visitor); err != nil {
		return nil, err
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound(domain.MsgCandidateNotFound)
	}

	detail := c.DetailFor(visitor)
	return &detail, nil
}

func (u *candidateUsecase) Create(ctx context.Context, in domain.CandidateInput) (*domain.Candidate, error) {
	c := &domain.Candidate{ID: uuid.NewString()}
	in.ApplyTo(c)
	c.ApplyDefaults()

	if err := u.validate.Struct(c); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	u.audit.CandidateChanged(ctx, audit.EventCandidateCreated, c.ID)
	return c, nil
}

func (u *candidateUsecase) Update(ctx context.Context, id string, in domain.CandidateInput) (*domain.Candidate, error) {
	id, err := candidateID(id)
	if err != nil {
		return nil, err
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound(domain.MsgCandidateNotFound)
	}

	in.ApplyTo(c)
	c.ApplyDefaults()
	if err := u.validate.Struct(c); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	if err := u.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	u.audit.CandidateChanged(ctx, audit.EventCandidateUpdated, c.ID)
	return c, nil
}

func (u *candidateUsecase) Delete(ctx context.Context, id string) error {
	id, err := candidateID(id)
	if err != nil {
		return err
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}

	u.audit.CandidateChanged(ctx, audit.EventCandidateDeleted, id)
	return nil
}

func (u *candidateUsecase) Interact(ctx context.Context, id, visitor, action string) (*domain.InteractionResult, error) {
	act, err := domain.ParseAction(action)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, domain.MsgInvalidAction, err)
	}

	id, err = candidateID(id)
	if err != nil {
		return nil, err
	}

	return u.repo.ToggleInteraction(ctx, id, visitor, act)
}
