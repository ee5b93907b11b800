package main

import (
	"testing"

	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestSlogGooseLogger(t *testing.T) {
	log, buf := logger.NewTestLogger(t)
	gooseLogger := &slogGooseLogger{logger: log}

	gooseLogger.Printf("OK   %s (%d ms)", "20250101000001_create_users_table.sql", 3)
	assert.NotPanics(t, func() { gooseLogger.Fatalf("failed: %s", "boom") })

	logger.AssertLogField(t, buf, "msg", "OK   20250101000001_create_users_table.sql (3 ms)")
	logger.AssertLogField(t, buf, "level", "ERROR")
}
