package models

import "time"

// Submission is one persisted poem entry.
type Submission struct {
	Row       int       `json:"row"`
	Author    string    `json:"author"`
	Handle    string    `json:"handle,omitempty"`
	Title     string    `json:"title,omitempty"`
	Poem      string    `json:"poem"`
	Theme     string    `json:"theme,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Featured  bool      `json:"featured"`
	Score     *int      `json:"score,omitempty"`
}

// ScoreValue returns the reflection score, treating an unset score as zero.
func (s Submission) ScoreValue() int {
	if s.Score == nil {
		return 0
	}
	return *s.Score
}

// Byline is the poster credit: the handle when present, otherwise the author.
func (s Submission) Byline() string {
	if s.Handle != "" {
		return "@" + s.Handle
	}
	return s.Author
}

// WeeklyPrompt is a community writing prompt. The current prompt is the last appended row.
type WeeklyPrompt struct {
	Week        int       `json:"week"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PostedDate  time.Time `json:"posted_date"`
}

// AuthorAggregate is a derived per-author statistic.
type AuthorAggregate struct {
	Author   string `json:"author"`
	Count    int    `json:"count"`
	ScoreSum int    `json:"score_sum"`
}

// PosterPage is one fixed-size page of wrapped poem text.
type PosterPage struct {
	Index  int      `json:"index"`
	Title  []string `json:"title,omitempty"`
	Lines  []string `json:"lines"`
	Byline string   `json:"byline,omitempty"`
}

// Pagination describes list paging metadata.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
