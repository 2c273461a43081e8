package usecase_test

import (
	"context"
	"slices"
	"sync"

	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/apperror"

	"github.com/stretchr/testify/mock"
)

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) List(ctx context.Context) ([]domain.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCandidateRepo) RecordView(ctx context.Context, id, visitor string) error {
	return m.Called(ctx, id, visitor).Error(0)
}

func (m *MockCandidateRepo) ToggleInteraction(ctx context.Context, id, visitor string, action domain.Action) (*domain.InteractionResult, error) {
	args := m.Called(ctx, id, visitor, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InteractionResult), args.Error(1)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, data, contentType)
	return args.String(0), args.Error(1)
}

// memCandidateRepo keeps candidates in memory and applies the same toggle
// rules as the SQL, for end-to-end scenarios through the usecase.
type memCandidateRepo struct {
	mu         sync.Mutex
	candidates map[string]*domain.Candidate
}

func newMemCandidateRepo() *memCandidateRepo {
	return &memCandidateRepo{candidates: map[string]*domain.Candidate{}}
}

func (r *memCandidateRepo) List(ctx context.Context) ([]domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Candidate{}
	for _, c := range r.candidates {
		out = append(out, *c)
	}
	slices.SortFunc(out, func(a, b domain.Candidate) int {
		if d := len(b.LikedBy) - len(a.LikedBy); d != 0 {
			return d
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *memCandidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.ViewedBy = slices.Clone(c.ViewedBy)
	cp.LikedBy = slices.Clone(c.LikedBy)
	cp.DislikedBy = slices.Clone(c.DislikedBy)
	return &cp, nil
}

func (r *memCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.candidates[c.ID] = &cp
	return nil
}

func (r *memCandidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.candidates[c.ID]
	if !ok {
		return apperror.NotFound(domain.MsgCandidateNotFound)
	}
	cp := *c
	cp.ViewedBy, cp.LikedBy, cp.DislikedBy = stored.ViewedBy, stored.LikedBy, stored.DislikedBy
	r.candidates[c.ID] = &cp
	return nil
}

func (r *memCandidateRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.candidates[id]; !ok {
		return apperror.NotFound(domain.MsgCandidateNotFound)
	}
	delete(r.candidates, id)
	return nil
}

func (r *memCandidateRepo) RecordView(ctx context.Context, id, visitor string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.candidates[id]; ok && !slices.Contains(c.ViewedBy, visitor) {
		c.ViewedBy = append(c.ViewedBy, visitor)
	}
	return nil
}

func (r *memCandidateRepo) ToggleInteraction(ctx context.Context, id, visitor string, action domain.Action) (*domain.InteractionResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return nil, apperror.NotFound(domain.MsgCandidateNotFound)
	}
	res := applyInteraction(c, visitor, action)
	return &res, nil
}

// applyInteraction mirrors the repository's toggle statement on an in-memory
// candidate: the visitor leaves the opposite set and has membership in the
// target set flipped.
func applyInteraction(c *domain.Candidate, visitor string, action domain.Action) domain.InteractionResult {
	target, opposite := &c.LikedBy, &c.DislikedBy
	if action == domain.ActionDislike {
		target, opposite = &c.DislikedBy, &c.LikedBy
	}

	*opposite = slices.DeleteFunc(*opposite, func(v string) bool { return v == visitor })
	if slices.Contains(*target, visitor) {
		*target = slices.DeleteFunc(*target, func(v string) bool { return v == visitor })
	} else {
		*target = append(*target, visitor)
	}

	state := domain.StateOf(c, visitor)
	return domain.InteractionResult{
		LikesCount:      len(c.LikedBy),
		DislikesCount:   len(c.DislikedBy),
		UserHasLiked:    state == domain.StateLiked,
		UserHasDisliked: state == domain.StateDisliked,
	}
}
