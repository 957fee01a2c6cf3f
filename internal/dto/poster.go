package dto

import "github.com/noah-isme/reflective-room/internal/models"

// PosterRequest paginates ad-hoc poem text.
type PosterRequest struct {
	Poem   string `json:"poem"`
	Title  string `json:"title"`
	Byline string `json:"byline"`
}

// PosterResponse lists rendered pages.
type PosterResponse struct {
	Pages        []models.PosterPage `json:"pages"`
	LineCapacity int                 `json:"line_capacity"`
	WrapWidth    int                 `json:"wrap_width"`
}

// SpeechRequest asks for narrated audio.
type SpeechRequest struct {
	Text string `json:"text" validate:"required"`
}
