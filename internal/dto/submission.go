package dto

import "github.com/noah-isme/reflective-room/internal/models"

// SubmitPoemRequest is the raw community form payload.
type SubmitPoemRequest struct {
	Author     string `json:"author" form:"author"`
	Handle     string `json:"handle" form:"handle"`
	Title      string `json:"title" form:"title"`
	Poem       string `json:"poem" form:"poem"`
	Theme      string `json:"theme" form:"theme"`
	Passphrase string `json:"passphrase" form:"passphrase"`
	Reflect    bool   `json:"reflect" form:"reflect"`
}

// SubmitPoemResponse returns the stored submission and any follow-up reflection.
type SubmitPoemResponse struct {
	Submission models.Submission   `json:"submission"`
	Reflection *ReflectionResponse `json:"reflection,omitempty"`
}

// ReflectionResponse is the outcome of a reflection request.
type ReflectionResponse struct {
	Row         int    `json:"row"`
	Text        string `json:"text"`
	Score       *int   `json:"score,omitempty"`
	ScoreStored bool   `json:"score_stored"`
}

// FeatureRequest toggles the featured flag.
type FeatureRequest struct {
	Featured *bool `json:"featured" validate:"required"`
}

// ListSubmissionsQuery pages the admin listing.
type ListSubmissionsQuery struct {
	Page     int `form:"page" validate:"omitempty,min=1"`
	PageSize int `form:"page_size" validate:"omitempty,min=1,max=200"`
}

// LeaderboardResponse carries both author aggregates.
type LeaderboardResponse struct {
	Counts []models.AuthorAggregate `json:"counts"`
	Scores []models.AuthorAggregate `json:"scores"`
	Total  int                      `json:"total"`
}
