package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/internal/models"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

func adminRows() []models.Submission {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return []models.Submission{
		{Row: 1, Author: "Ana", Poem: "one", Timestamp: base},
		{Row: 2, Author: "Bo", Handle: "bo", Poem: "two, with comma", Timestamp: base.Add(time.Hour), Featured: true},
		{Row: 3, Author: "Cy", Poem: "three", Timestamp: base.Add(2 * time.Hour), Score: intPtr(6)},
	}
}

func newAdminService(repo *mockSubmissionRepo, cfg AdminConfig) *AdminService {
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = "secret"
	}
	return NewAdminService(repo, nil, zap.NewNop(), cfg)
}

func TestAdminLoginPlainPassword(t *testing.T) {
	svc := newAdminService(&mockSubmissionRepo{}, AdminConfig{Password: "open sesame", TokenExpiry: time.Hour})

	_, err := svc.Login(context.Background(), dto.AdminLoginRequest{Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)

	resp, err := svc.Login(context.Background(), dto.AdminLoginRequest{Password: "open sesame"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAdminLoginBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := newAdminService(&mockSubmissionRepo{}, AdminConfig{Password: "ignored", PasswordHash: string(hash)})

	_, err = svc.Login(context.Background(), dto.AdminLoginRequest{Password: "ignored"})
	assert.Error(t, err)
	_, err = svc.Login(context.Background(), dto.AdminLoginRequest{Password: "hunter2"})
	assert.NoError(t, err)
}

func TestAdminLoginRejectsWhenUnconfigured(t *testing.T) {
	svc := newAdminService(&mockSubmissionRepo{}, AdminConfig{})
	_, err := svc.Login(context.Background(), dto.AdminLoginRequest{Password: ""})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	_, err = svc.Login(context.Background(), dto.AdminLoginRequest{Password: "anything"})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAdminValidateTokenRejectsExpiredAndForeign(t *testing.T) {
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := newAdminService(&mockSubmissionRepo{}, AdminConfig{Password: "pw", TokenExpiry: time.Minute, Clock: fixedClock(issued)})
	resp, err := svc.Login(context.Background(), dto.AdminLoginRequest{Password: "pw"})
	require.NoError(t, err)

	later := newAdminService(&mockSubmissionRepo{}, AdminConfig{Password: "pw", Clock: fixedClock(issued.Add(time.Hour))})
	_, err = later.ValidateToken(resp.AccessToken)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	other := newAdminService(&mockSubmissionRepo{}, AdminConfig{TokenSecret: "different", Clock: fixedClock(issued)})
	_, err = other.ValidateToken(resp.AccessToken)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestAdminListSubmissionsNewestFirst(t *testing.T) {
	svc := newAdminService(&mockSubmissionRepo{rows: adminRows()}, AdminConfig{})

	items, pagination, err := svc.ListSubmissions(context.Background(), dto.ListSubmissionsQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Row)
	assert.Equal(t, 2, items[1].Row)
	assert.Equal(t, 3, pagination.TotalCount)

	items, _, err = svc.ListSubmissions(context.Background(), dto.ListSubmissionsQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Row)

	items, _, err = svc.ListSubmissions(context.Background(), dto.ListSubmissionsQuery{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAdminExportCSV(t *testing.T) {
	svc := newAdminService(&mockSubmissionRepo{rows: adminRows()}, AdminConfig{})
	out, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "author,handle,title,poem,theme,timestamp,featured,score", lines[0])
	assert.Equal(t, `Bo,bo,,"two, with comma",,2024-01-01T10:00:00Z,true,`, lines[2])
	assert.True(t, strings.HasSuffix(lines[3], ",false,6"))
}

func TestAdminFeatureKeepsSingleFeaturedRow(t *testing.T) {
	repo := &mockSubmissionRepo{rows: adminRows()}
	svc := newAdminService(repo, AdminConfig{})

	sub, err := svc.Feature(context.Background(), 3, true)
	require.NoError(t, err)
	assert.True(t, sub.Featured)
	assert.Equal(t, []int{3}, repo.featuredRows())

	featured, err := svc.Featured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, featured.Row)

	_, err = svc.Feature(context.Background(), 3, false)
	require.NoError(t, err)
	assert.Empty(t, repo.featuredRows())
	_, err = svc.Featured(context.Background())
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAdminFeatureUnknownRow(t *testing.T) {
	repo := &mockSubmissionRepo{rows: adminRows()}
	_, err := newAdminService(repo, AdminConfig{}).Feature(context.Background(), 99, true)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Equal(t, []int{2}, repo.featuredRows())
}
