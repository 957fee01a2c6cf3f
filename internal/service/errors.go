package service

import (
	"errors"

	"github.com/noah-isme/reflective-room/internal/repository"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

// storeError converts a repository failure into a user-facing error. Missing
// rows become NOT_FOUND; everything else is a connectivity failure.
func storeError(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, "submission not found")
	}
	if errors.Is(err, repository.ErrUnrecognisedLayout) {
		return appErrors.WrapAs(err, appErrors.ErrInternal, "the submissions sheet layout is not recognised; add a header row naming the poem column")
	}
	return appErrors.WrapAs(err, appErrors.ErrConnectivity, message)
}
