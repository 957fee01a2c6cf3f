package service

import (
	"context"
	"time"

	"github.com/noah-isme/reflective-room/internal/models"
	"github.com/noah-isme/reflective-room/internal/repository"
)

type mockSubmissionRepo struct {
	rows       []models.Submission
	readErr    error
	appendErr  error
	updateErr  error
	appends    int
	scoreCalls int
}

func (m *mockSubmissionRepo) ReadAll(ctx context.Context) ([]models.Submission, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := make([]models.Submission, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *mockSubmissionRepo) Get(ctx context.Context, row int) (*models.Submission, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	for _, sub := range m.rows {
		if sub.Row == row {
			found := sub
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockSubmissionRepo) Append(ctx context.Context, sub *models.Submission) (int, error) {
	if m.appendErr != nil {
		return 0, m.appendErr
	}
	m.appends++
	sub.Row = len(m.rows) + 1
	m.rows = append(m.rows, *sub)
	return sub.Row, nil
}

func (m *mockSubmissionRepo) SetFeatured(ctx context.Context, row int, featured bool) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i := range m.rows {
		if m.rows[i].Row == row {
			m.rows[i].Featured = featured
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockSubmissionRepo) SetScore(ctx context.Context, row int, score int) error {
	m.scoreCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	for i := range m.rows {
		if m.rows[i].Row == row {
			m.rows[i].Score = &score
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockSubmissionRepo) featuredRows() []int {
	var rows []int
	for _, sub := range m.rows {
		if sub.Featured {
			rows = append(rows, sub.Row)
		}
	}
	return rows
}

type mockReflector struct {
	text        string
	err         error
	calls       int
	instruction string
}

func (m *mockReflector) Reflect(ctx context.Context, poem, instruction string) (string, error) {
	m.calls++
	m.instruction = instruction
	return m.text, m.err
}

type mockSpeaker struct {
	audio []byte
	err   error
	text  string
}

func (m *mockSpeaker) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	m.text = text
	if m.err != nil {
		return nil, "", m.err
	}
	return m.audio, "audio/wav", nil
}

type mockPromptRepo struct {
	prompts   []models.WeeklyPrompt
	readErr   error
	appendErr error
}

func (m *mockPromptRepo) ReadAll(ctx context.Context) ([]models.WeeklyPrompt, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return append([]models.WeeklyPrompt(nil), m.prompts...), nil
}

func (m *mockPromptRepo) Append(ctx context.Context, prompt models.WeeklyPrompt) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.prompts = append(m.prompts, prompt)
	return nil
}

func intPtr(v int) *int { return &v }

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
