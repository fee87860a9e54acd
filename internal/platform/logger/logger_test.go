package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{name: "Debug", input: "debug", want: slog.LevelDebug},
		{name: "Info", input: "info", want: slog.LevelInfo},
		{name: "Warn", input: "warn", want: slog.LevelWarn},
		{name: "Error", input: "error", want: slog.LevelError},
		{name: "CaseInsensitive", input: "DEBUG", want: slog.LevelDebug},
		{name: "EmptyDefaultsToInfo", input: "", want: slog.LevelInfo},
		{name: "Unknown", input: "verbose", want: slog.LevelInfo, wantErr: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseLevel(tc.input)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSetupNeverReturnsNil(t *testing.T) {
	log, err := Setup(LoggerConfig{Level: "not-a-level", JSON: true})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("ReturnsAttachedLogger", func(t *testing.T) {
		t.Parallel()

		attached := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := WithLogger(context.Background(), attached)
		assert.Same(t, attached, FromContext(ctx))
	})

	t.Run("FallsBackToDefault", func(t *testing.T) {
		t.Parallel()

		assert.NotNil(t, FromContext(context.Background()))
	})
}
