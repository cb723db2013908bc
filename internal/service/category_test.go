package service

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"lernbot/internal/domain"
	"lernbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple", input: "Travel", expected: "travel"},
		{name: "spaces and punctuation", input: "  Food & Drinks! ", expected: "food-drinks"},
		{name: "cyrillic", input: "Глаголы движения", expected: "глаголы-движения"},
		{name: "only symbols", input: "!!!", expected: ""},
		{name: "long name truncated", input: strings.Repeat("a", 60), expected: strings.Repeat("a", 48)},
		{name: "long cjk name cut at rune boundary", input: strings.Repeat("漢", 30), expected: strings.Repeat("漢", 16)},
		{name: "long cyrillic name", input: strings.Repeat("я", 30), expected: strings.Repeat("я", 24)},
		{name: "no trailing dash at the limit", input: strings.Repeat("a", 47) + " b", expected: strings.Repeat("a", 47)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := categoryID(tt.input)
			assert.Equal(t, tt.expected, id)
			assert.LessOrEqual(t, len(id), maxCategoryIDBytes)
		})
	}
}

func TestCategoryID_FitsCallbackData(t *testing.T) {
	longest := ""
	for _, u := range []string{"filter", "move_to", "del_category"} {
		if len(u) > len(longest) {
			longest = u
		}
	}

	for _, name := range []string{
		strings.Repeat("漢字", 40),
		strings.Repeat("😀a", 40),
		strings.Repeat("Ölfarbe ", 20),
	} {
		data := "\f" + longest + "|" + categoryID(name)
		assert.LessOrEqual(t, len(data), 64, name)
		assert.True(t, utf8.ValidString(data), name)
	}
}

func TestCategoryService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		mockError     error
		expectCall    bool
		expectedError bool
	}{
		{
			name:       "valid name",
			input:      "Travel",
			expectCall: true,
		},
		{
			name:          "empty name",
			input:         "   ",
			expectedError: true,
		},
		{
			name:          "reserved general",
			input:         "General",
			expectedError: true,
		},
		{
			name:          "reserved all",
			input:         "all",
			expectedError: true,
		},
		{
			name:          "duplicate",
			input:         "Travel",
			mockError:     domain.ErrCategoryExists,
			expectCall:    true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockCategoryRepository)
			if tt.expectCall {
				mockRepo.On("Create", mock.MatchedBy(func(c *domain.Category) bool {
					return c.ID == "travel" && c.Name == "Travel" && c.UserID == 123
				})).Return(tt.mockError)
			}

			service := NewCategoryService(mockRepo)

			category, err := service.Create(123, tt.input, false)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, category)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "travel", category.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_List(t *testing.T) {
	mockRepo := new(testutil.MockCategoryRepository)
	mockRepo.On("ListByUser", int64(123)).Return([]domain.Category{
		{ID: "travel", UserID: 123, Name: "Travel"},
	}, nil)

	service := NewCategoryService(mockRepo)

	categories, err := service.List(123)

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, domain.GeneralCategoryID, categories[0].ID)
	assert.Equal(t, "travel", categories[1].ID)
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_List_Error(t *testing.T) {
	mockRepo := new(testutil.MockCategoryRepository)
	mockRepo.On("ListByUser", int64(123)).Return(nil, fmt.Errorf("db error"))

	service := NewCategoryService(mockRepo)

	categories, err := service.List(123)

	assert.Error(t, err)
	assert.Nil(t, categories)
}

func TestCategoryService_Delete(t *testing.T) {
	mockRepo := new(testutil.MockCategoryRepository)
	mockRepo.On("Delete", int64(123), "travel").Return(nil)

	service := NewCategoryService(mockRepo)

	assert.NoError(t, service.Delete(123, "travel"))
	assert.Error(t, service.Delete(123, domain.GeneralCategoryID))
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_Ensure(t *testing.T) {
	t.Run("empty and reserved names resolve to general", func(t *testing.T) {
		mockRepo := new(testutil.MockCategoryRepository)
		svc := NewCategoryService(mockRepo)

		for _, name := range []string{"", "  ", "General", "all"} {
			id, err := svc.Ensure(123, name)
			require.NoError(t, err)
			assert.Equal(t, domain.GeneralCategoryID, id)
		}
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("creates missing category", func(t *testing.T) {
		mockRepo := new(testutil.MockCategoryRepository)
		mockRepo.On("Create", mock.AnythingOfType("*domain.Category")).Return(nil)
		svc := NewCategoryService(mockRepo)

		id, err := svc.Ensure(123, "Travel Phrases")

		require.NoError(t, err)
		assert.Equal(t, "travel-phrases", id)
		mockRepo.AssertExpectations(t)
	})

	t.Run("existing category is reused", func(t *testing.T) {
		mockRepo := new(testutil.MockCategoryRepository)
		mockRepo.On("Create", mock.AnythingOfType("*domain.Category")).Return(domain.ErrCategoryExists)
		svc := NewCategoryService(mockRepo)

		id, err := svc.Ensure(123, "travel")

		require.NoError(t, err)
		assert.Equal(t, "travel", id)
	})

	t.Run("storage error", func(t *testing.T) {
		mockRepo := new(testutil.MockCategoryRepository)
		mockRepo.On("Create", mock.AnythingOfType("*domain.Category")).Return(fmt.Errorf("db down"))
		svc := NewCategoryService(mockRepo)

		_, err := svc.Ensure(123, "travel")

		assert.Error(t, err)
	})
}
