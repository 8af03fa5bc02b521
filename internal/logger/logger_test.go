package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitProductionJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(Options{AppName: "Cuidador", Env: "production", Out: &buf})

	slog.Debug("hidden")
	slog.Info("elder saved", "elder_id", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "elder saved", rec["msg"])
	assert.Equal(t, "Cuidador", rec["app"])
	assert.EqualValues(t, 1, rec["elder_id"])
}

func TestInitDevelopmentText(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(Options{Env: "development", Out: &buf})
	slog.Debug("checklist seeded")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), `msg="checklist seeded"`)
}
