package services

import (
	"errors"

	"setlist/internal/apperror"
	"setlist/internal/repositories"
)

// storeError converts a repository error into an application error.
func storeError(err error, resource string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.NotFound(resource)
	}
	return apperror.Internal(err)
}
