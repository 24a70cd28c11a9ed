package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baharkarakas/dormshop-backend/internal/apperr"
)

func assertKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Equal(t, kind, apperr.KindOf(err), err.Error())
	}
}

func ptr[T any](v T) *T { return &v }
