package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := NewNotFoundError("대시보드를 찾을 수 없습니다")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "대시보드를 찾을 수 없습니다", err.Error())

	wrapped := fmt.Errorf("read: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, StatusNotFound, StatusCodeOf(wrapped))
}

func TestConstructorsStatusCodes(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		kind   error
		status int
	}{
		{"validation", NewValidationError("x"), ErrValidation, StatusBadRequest},
		{"format", NewFormatError("x"), ErrInvalidFormat, StatusBadRequest},
		{"duplicate", NewDuplicateNameError("x"), ErrDuplicateName, StatusBadRequest},
		{"reference", NewReferenceNotFoundError("x"), ErrReferenceNotFound, StatusBadRequest},
		{"not found", NewNotFoundError("x"), ErrNotFound, StatusNotFound},
		{"file", NewFileStoreError("x", errors.New("disk full")), ErrFileStore, StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.err, tc.kind)
			assert.Equal(t, tc.status, StatusCodeOf(tc.err))
		})
	}
}

func TestFileStoreErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewFileStoreError("파일 저장 중 오류 발생", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "파일 저장 중 오류 발생", err.Error())
}

func TestConvertMongoError(t *testing.T) {
	assert.Nil(t, ConvertMongoError(nil, "x"))

	t.Run("passes through app errors", func(t *testing.T) {
		in := NewNotFoundError("없음")
		assert.Same(t, in, ConvertMongoError(in, "x"))
	})

	t.Run("wraps driver error as store error", func(t *testing.T) {
		cause := errors.New("boom")
		err := ConvertMongoError(cause, "대시보드 조회 실패")

		var appErr *Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, ErrCodeDatabaseQuery.Code, appErr.Code.Code)
		assert.Equal(t, StatusInternalServerError, appErr.StatusCode)
		assert.Equal(t, "대시보드 조회 실패", appErr.Message)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("timeout maps to connection error", func(t *testing.T) {
		err := ConvertMongoError(context.DeadlineExceeded, "x")

		var appErr *Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, ErrCodeDatabaseConnection.Code, appErr.Code.Code)
	})
}

func TestStatusCodeOfPlainError(t *testing.T) {
	assert.Equal(t, StatusInternalServerError, StatusCodeOf(errors.New("plain")))
}
