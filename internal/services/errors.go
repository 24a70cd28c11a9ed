package services

import (
	"errors"
	"fmt"

	"github.com/baharkarakas/dormshop-backend/internal/apperr"
	repo "github.com/baharkarakas/dormshop-backend/internal/repository"
)

// notFound turns a repository miss into a NotFound with msg and wraps
// anything else as an internal failure of op.
func notFound(err error, op, msg string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound("%s", msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
