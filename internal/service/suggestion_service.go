package service

import (
	"context"

	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/internal/repository"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// SuggestionService manages community suggestions.
type SuggestionService struct {
	suggestions repository.SuggestionRepository
}

// NewSuggestionService builds the service.
func NewSuggestionService(suggestions repository.SuggestionRepository) *SuggestionService {
	return &SuggestionService{suggestions: suggestions}
}

// Create submits a suggestion on behalf of the authenticated author.
func (s *SuggestionService) Create(ctx context.Context, authorID, title, description string) (*domain.Suggestion, error) {
	if authorID == "" || title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}

	suggestion := &domain.Suggestion{
		Title:       title,
		Description: description,
		AuthorID:    authorID,
		Status:      domain.SuggestionStatusNew,
	}
	if err := s.suggestions.Create(ctx, suggestion); err != nil {
		return nil, apperrors.MapError(err)
	}
	return suggestion, nil
}

// List returns all suggestions, newest first.
func (s *SuggestionService) List(ctx context.Context) ([]domain.Suggestion, error) {
	out, err := s.suggestions.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return out, nil
}
