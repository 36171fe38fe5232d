package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jet1090go/internal/app"
)

// TestConfigWithDefaults verifies zero-valued fields are filled from
// package defaults while explicit values survive untouched.
func TestConfigWithDefaults(t *testing.T) {
	cfg := app.Config{}.WithDefaults()
	assert.Equal(t, app.DefaultDedupWindow, cfg.DedupWindow)
	assert.Equal(t, app.DefaultStateMaxAge, cfg.StateMaxAge)
	assert.Equal(t, app.DefaultHistoryMaxAge, cfg.HistoryMaxAge)
	assert.Equal(t, app.DefaultHistoryLength, cfg.HistoryLength)
	assert.Equal(t, "/ws", cfg.WebsocketPath)

	custom := app.Config{DedupWindow: 2 * time.Second, WebsocketPath: "/stream"}.WithDefaults()
	assert.Equal(t, 2*time.Second, custom.DedupWindow)
	assert.Equal(t, "/stream", custom.WebsocketPath)
}

// TestNewApplication verifies construction returns an application
// before any components are initialized.
func TestNewApplication(t *testing.T) {
	application := app.NewApplication(app.Config{Verbose: true})
	assert.NotNil(t, application)
}

// TestShowVersion verifies printing the version banner doesn't panic.
func TestShowVersion(t *testing.T) {
	assert.NotPanics(t, func() {
		app.ShowVersion()
	})
}
