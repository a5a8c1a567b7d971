package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := NotFound(`district "Lince"`)
	wrapped := Wrap(base, "loading district info")

	assert.Equal(t, CodeNotFound, GetCode(wrapped))
	assert.Equal(t, `loading district info: district "Lince" not found`, wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrapf(fmt.Errorf("disk on fire"), "reading %s", "prices.csv")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "reading prices.csv: disk on fire", wrapped.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", DatasetInvalid("bad month"))

	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeDatasetInvalid, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{InvalidInput("x"), http.StatusBadRequest},
		{DatasetInvalid("x"), http.StatusUnprocessableEntity},
		{ConfigInvalid("x"), http.StatusInternalServerError},
		{fmt.Errorf("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "error %v", tt.err)
	}
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, fmt.Errorf("bad form"))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.ErrorContains(t, err, "bad form")
}
