package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/internal/models"
	"github.com/noah-isme/reflective-room/internal/repository"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
	"github.com/noah-isme/reflective-room/pkg/export"
)

const (
	defaultAdminPageSize = 20
	adminTokenIssuer     = "reflective-room"
)

type adminSubmissionRepository interface {
	ReadAll(ctx context.Context) ([]models.Submission, error)
	Get(ctx context.Context, row int) (*models.Submission, error)
	SetFeatured(ctx context.Context, row int, featured bool) error
}

// AdminConfig defines the shared-password gate and token settings.
type AdminConfig struct {
	Password     string
	PasswordHash string
	TokenSecret  string
	TokenExpiry  time.Duration
	Clock        func() time.Time
}

// AdminService provides the curation use cases behind the admin gate.
type AdminService struct {
	repo      adminSubmissionRepository
	exporter  *export.CSVExporter
	validator *validator.Validate
	logger    *zap.Logger
	config    AdminConfig
}

// NewAdminService constructs an AdminService instance.
func NewAdminService(repo adminSubmissionRepository, validate *validator.Validate, logger *zap.Logger, config AdminConfig) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 2 * time.Hour
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &AdminService{repo: repo, exporter: export.NewCSVExporter(), validator: validate, logger: logger, config: config}
}

// Login checks the shared admin password and issues a short-lived token.
func (s *AdminService) Login(ctx context.Context, req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}
	if !s.passwordMatches(req.Password) {
		s.logger.Warn("admin login rejected")
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid password")
	}

	now := s.config.Clock().UTC()
	token, err := s.generateToken(now)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}
	return &dto.AdminLoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.TokenExpiry.Seconds()),
		IssuedAt:    now,
	}, nil
}

func (s *AdminService) passwordMatches(password string) bool {
	if s.config.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.config.PasswordHash), []byte(password)) == nil
	}
	return s.config.Password != "" && password == s.config.Password
}

func (s *AdminService) generateToken(now time.Time) (string, error) {
	claims := models.AdminClaims{
		Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    adminTokenIssuer,
			Subject:   models.RoleAdmin,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.TokenSecret))
}

// ValidateToken parses and validates an admin token returning the claims.
func (s *AdminService) ValidateToken(tokenString string) (*models.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	}, jwt.WithTimeFunc(s.config.Clock))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.AdminClaims)
	if !ok || !token.Valid || claims.Role != models.RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// ListSubmissions returns submissions newest first with pagination metadata.
func (s *AdminService) ListSubmissions(ctx context.Context, query dto.ListSubmissionsQuery) ([]models.Submission, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid pagination")
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}
	size := query.PageSize
	if size <= 0 {
		size = defaultAdminPageSize
	}

	subs, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, nil, storeError(err, "could not load submissions")
	}
	slices.SortStableFunc(subs, func(a, b models.Submission) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return b.Row - a.Row
	})

	start := min((page-1)*size, len(subs))
	end := min(start+size, len(subs))
	return subs[start:end], &models.Pagination{Page: page, PageSize: size, TotalCount: len(subs)}, nil
}

// ExportCSV renders every submission in canonical column order, oldest first.
func (s *AdminService) ExportCSV(ctx context.Context) ([]byte, error) {
	subs, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, storeError(err, "could not load submissions")
	}
	rows := make([][]string, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, exportRow(sub))
	}
	out, err := s.exporter.Render(export.Table{Headers: repository.SubmissionColumns, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export submissions")
	}
	return out, nil
}

func exportRow(sub models.Submission) []string {
	score := ""
	if sub.Score != nil {
		score = strconv.Itoa(*sub.Score)
	}
	ts := ""
	if !sub.Timestamp.IsZero() {
		ts = sub.Timestamp.UTC().Format(time.RFC3339)
	}
	return []string{sub.Author, sub.Handle, sub.Title, sub.Poem, sub.Theme, ts, strconv.FormatBool(sub.Featured), score}
}

// Feature marks row as the featured submission and clears every other featured row.
func (s *AdminService) Feature(ctx context.Context, row int, featured bool) (*models.Submission, error) {
	target, err := s.repo.Get(ctx, row)
	if err != nil {
		return nil, storeError(err, "could not load the poem")
	}
	if featured {
		subs, err := s.repo.ReadAll(ctx)
		if err != nil {
			return nil, storeError(err, "could not load submissions")
		}
		for _, sub := range subs {
			if sub.Featured && sub.Row != row {
				if err := s.repo.SetFeatured(ctx, sub.Row, false); err != nil {
					return nil, storeError(err, "could not update the featured poem")
				}
			}
		}
	}
	if target.Featured != featured {
		if err := s.repo.SetFeatured(ctx, row, featured); err != nil {
			return nil, storeError(err, "could not update the featured poem")
		}
	}
	target.Featured = featured
	s.logger.Info("featured flag updated", zap.Int("row", row), zap.Bool("featured", featured))
	return target, nil
}

// Featured returns the featured submission. When several rows carry the flag
// the most recently appended one wins.
func (s *AdminService) Featured(ctx context.Context) (*models.Submission, error) {
	subs, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, storeError(err, "could not load submissions")
	}
	for i := len(subs) - 1; i >= 0; i-- {
		if subs[i].Featured {
			return &subs[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "no poem is featured yet")
}
