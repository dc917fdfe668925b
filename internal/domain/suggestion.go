package domain

import "time"

// SuggestionStatus enumerates community suggestion triage states.
type SuggestionStatus string

const (
	SuggestionStatusNew           SuggestionStatus = "New"
	SuggestionStatusUnderReview   SuggestionStatus = "Under Review"
	SuggestionStatusApproved      SuggestionStatus = "Approved"
	SuggestionStatusInDevelopment SuggestionStatus = "In Development"
	SuggestionStatusDeclined      SuggestionStatus = "Declined"
)

// Suggestion is a community-submitted idea.
type Suggestion struct {
	ID           string
	Title        string
	Description  string
	AuthorID     string
	Upvotes      int
	Status       SuggestionStatus
	IsStudioPick bool
	CreatedAt    time.Time
}
