// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/caarlos0/env/v11"
)

// Settings are the logging knobs read from the environment.
type Settings struct {
	Level string `env:"PENGDASH_LOG" envDefault:"ERROR"`
	File  string `env:"PENGDASH_LOG_FILE"`
}

// InitLogger sets up Apex with a custom handler and a log level from the
// PENGDASH_LOG env variable. Output goes to stdout unless PENGDASH_LOG_FILE
// names a file.
func InitLogger() {
	var s Settings
	if err := env.Parse(&s); err != nil {
		fmt.Fprintf(os.Stderr, "parse env: %v\n", err)
	}

	var w io.Writer = os.Stdout
	if s.File != "" {
		if f, err := os.OpenFile(s.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil { //nolint:mnd
			w = f
		} else {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		}
	}

	log.SetHandler(&CustomHandler{Writer: w})
	level, err := log.ParseLevel(strings.ToLower(s.Level))
	if err != nil {
		level = log.ErrorLevel
	}
	log.SetLevel(level)
}

// Quiet sends log output to w. The interactive dashboard uses it so that log
// lines never land on the screen it owns.
func Quiet(w io.Writer) {
	log.SetHandler(&CustomHandler{Writer: w})
}

// CustomHandler formats log messages and writes them to Writer.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stdout
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())
	_, err := fmt.Fprintf(w, "%s %.1s %s%s\n", timestamp, level, e.Message, formatFields(e.Fields))
	return err
}

// formatFields renders fields as sorted key=value pairs.
func formatFields(fields log.Fields) string {
	if len(fields) == 0 {
		return ""
	}
	names := fields.Names()
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		fmt.Fprintf(&b, " %s=%v", n, fields.Get(n))
	}
	return b.String()
}

// ToFile reports whether PENGDASH_LOG_FILE redirects log output to a file.
func ToFile() bool {
	var s Settings
	_ = env.Parse(&s)
	return s.File != ""
}
