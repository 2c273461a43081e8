package v1

import (
	"context"

	"candidate-voting-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockAuthUC struct {
	mock.Mock
}

func (m *MockAuthUC) Register(ctx context.Context, req domain.RegisterRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAuthUC) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}

type MockCandidateUC struct {
	mock.Mock
}

func (m *MockCandidateUC) List(ctx context.Context) ([]domain.CandidateSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateSummary), args.Error(1)
}

func (m *MockCandidateUC) Get(ctx context.Context, id, visitor string) (*domain.CandidateDetail, error) {
	args := m.Called(ctx, id, visitor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateDetail), args.Error(1)
}

func (m *MockCandidateUC) Create(ctx context.Context, in domain.CandidateInput) (*domain.Candidate, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateUC) Update(ctx context.Context, id string, in domain.CandidateInput) (*domain.Candidate, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateUC) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCandidateUC) Interact(ctx context.Context, id, visitor, action string) (*domain.InteractionResult, error) {
	args := m.Called(ctx, id, visitor, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InteractionResult), args.Error(1)
}

type MockImageUC struct {
	mock.Mock
}

func (m *MockImageUC) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	args := m.Called(ctx, filename, data)
	return args.String(0), args.Error(1)
}

type MockExportUC struct {
	mock.Mock
}

func (m *MockExportUC) ExportStandings(ctx context.Context, format string) (*domain.ExportFile, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportFile), args.Error(1)
}

type stubHealth struct {
	ok bool
}

func (s stubHealth) Check(ctx context.Context) (map[string]string, bool) {
	if s.ok {
		return map[string]string{"status": "ok", "database": "up"}, true
	}
	return map[string]string{"status": "degraded", "database": "down"}, false
}
