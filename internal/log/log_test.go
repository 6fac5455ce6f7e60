// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}

	err := h.HandleLog(&log.Entry{
		Level:   log.WarnLevel,
		Message: "hello",
		Fields:  log.Fields{"rows": 3, "column": "species"},
	})
	require.NoError(t, err)

	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} W hello column=species rows=3\n$`, buf.String())
}

func TestFormatFieldsEmpty(t *testing.T) {
	assert.Equal(t, "", formatFields(nil))
}

func TestInitLoggerLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  log.Level
	}{
		{name: "default", level: "", want: log.ErrorLevel},
		{name: "debug", level: "DEBUG", want: log.DebugLevel},
		{name: "lower case", level: "info", want: log.InfoLevel},
		{name: "garbage", level: "chatty", want: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.level != "" {
				t.Setenv("PENGDASH_LOG", tt.level)
			} else {
				t.Setenv("PENGDASH_LOG", "ERROR")
			}
			InitLogger()

			logger, ok := log.Log.(*log.Logger)
			require.True(t, ok)
			assert.Equal(t, tt.want, logger.Level)
		})
	}
}

func TestInitLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pengdash.log")
	t.Setenv("PENGDASH_LOG", "INFO")
	t.Setenv("PENGDASH_LOG_FILE", path)

	InitLogger()
	log.Info("to the file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "I to the file")
}
