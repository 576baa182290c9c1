package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blogem/campus-feedback/services"
)

func TestSubmitStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"empty", services.ErrEmptyFeedback, http.StatusBadRequest, "warning"},
		{"invalid", fmt.Errorf("%w: category must be one of the listed options", services.ErrInvalidFeedback), http.StatusBadRequest, "error"},
		{"classifier", fmt.Errorf("%w: timeout", services.ErrClassification), http.StatusBadGateway, "error"},
		{"storage", fmt.Errorf("%w: disk full", services.ErrStorage), http.StatusServiceUnavailable, "error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, flash := submitStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantType, flash.Type)
			assert.NotEmpty(t, flash.Message)
		})
	}
}

func TestSubmitStatus_InvalidKeepsMessage(t *testing.T) {
	err := fmt.Errorf("%w: name is too long", services.ErrInvalidFeedback)
	_, flash := submitStatus(err)
	assert.Equal(t, err.Error(), flash.Message)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "-0.6", formatScore(-0.6))
	assert.Equal(t, "0", formatScore(0))
	assert.Equal(t, "0.9812", formatScore(0.9812))
}
