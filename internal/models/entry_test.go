package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		token string
		want  Level
	}{
		{"ERROR", LevelError},
		{"error", LevelError},
		{"ERR", LevelError},
		{"WARN", LevelWarn},
		{"WARNING", LevelWarn},
		{"INFO", LevelInfo},
		{"NOTICE", LevelInfo},
		{"DEBUG", LevelDebug},
		{"TRACE", LevelDebug},
		{"CRITICAL", LevelCritical},
		{"FATAL", LevelCritical},
		{"PANIC", LevelCritical},
		{"banana", LevelUnknown},
		{"", LevelUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.token), "token %q", tt.token)
	}
}

func TestLevelOrdering(t *testing.T) {
	assert.True(t, LevelCritical > LevelError)
	assert.True(t, LevelError > LevelWarn)
	assert.True(t, LevelWarn > LevelInfo)
	assert.True(t, LevelInfo > LevelDebug)
}

func TestIsError(t *testing.T) {
	assert.True(t, LevelError.IsError())
	assert.True(t, LevelCritical.IsError())
	assert.False(t, LevelWarn.IsError())
	assert.False(t, LevelUnknown.IsError())
}
