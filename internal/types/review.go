package types

import "time"

// Review is a single rating plus comment for an attraction. Two provenances
// exist: catalog-embedded reviews (shipped with the attraction data, no
// DateAdded, never deletable) and user-submitted reviews (created at runtime,
// stamped with an id and timestamp).
type Review struct {
	ID             string     `json:"id,omitempty"`
	User           string     `json:"user"`
	Rating         int        `json:"rating"`
	Comment        string     `json:"comment"`
	AttractionID   int        `json:"attraction_id,omitempty"`
	AttractionName string     `json:"attraction_name,omitempty"`
	Category       string     `json:"category,omitempty"`
	DateAdded      *time.Time `json:"date_added,omitempty"`
	IsUserReview   bool       `json:"is_user_review"`
}

// CreateReviewRequest is the payload for submitting a review.
type CreateReviewRequest struct {
	User         string `json:"user" validate:"required"`
	AttractionID int    `json:"attraction_id" validate:"required"`
	Rating       int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment      string `json:"comment" validate:"required,min=10"`
}

// ReviewStats summarizes the currently filtered review set.
type ReviewStats struct {
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
}
