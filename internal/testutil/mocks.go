package testutil

import (
	"time"

	"lernbot/internal/domain"
	"lernbot/internal/srs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) SetReminders(userID int64, enabled bool) error {
	args := m.Called(userID, enabled)
	return args.Error(0)
}

func (m *MockUserRepository) ListReminderUsers() ([]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockPhraseRepository is a mock for PhraseRepository
type MockPhraseRepository struct {
	mock.Mock
}

func (m *MockPhraseRepository) Create(p *domain.Phrase) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockPhraseRepository) GetByID(userID int64, id uuid.UUID) (*domain.Phrase, error) {
	args := m.Called(userID, id)
	if fn, ok := args.Get(0).(func(int64, uuid.UUID) *domain.Phrase); ok {
		return fn(userID, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Phrase), args.Error(1)
}

func (m *MockPhraseRepository) ListByUser(userID int64) ([]domain.Phrase, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Phrase), args.Error(1)
}

func (m *MockPhraseRepository) SaveReviewState(id uuid.UUID, state srs.State) error {
	args := m.Called(id, state)
	return args.Error(0)
}

func (m *MockPhraseRepository) MarkSeen(userID int64, id uuid.UUID) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

func (m *MockPhraseRepository) UpdateCategory(userID int64, id uuid.UUID, categoryID string) error {
	args := m.Called(userID, id, categoryID)
	return args.Error(0)
}

func (m *MockPhraseRepository) Delete(userID int64, id uuid.UUID) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

func (m *MockPhraseRepository) CountDue(userID int64, now time.Time) (int, error) {
	args := m.Called(userID, now)
	return args.Int(0), args.Error(1)
}

// MockCategoryRepository is a mock for CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(c *domain.Category) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockCategoryRepository) ListByUser(userID int64) ([]domain.Category, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(userID int64, id string) error {
	args := m.Called(userID, id)
	return args.Error(0)
}
