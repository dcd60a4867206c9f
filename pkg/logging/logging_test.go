package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_ContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, true, slog.LevelInfo)

	ctx := AppendCtx(context.Background(), slog.String("app", "pgmctl"))
	ctx = AppendCtx(ctx, slog.Group("image", slog.String("id", "abc")))
	log.InfoContext(ctx, "loaded", "width", 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "loaded", rec["msg"])
	assert.Equal(t, "pgmctl", rec["app"])
	assert.Equal(t, map[string]any{"id": "abc"}, rec["image"])
	assert.Equal(t, float64(2), rec["width"])
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, false, slog.LevelWarn)
	log.Info("hidden")
	assert.Zero(t, buf.Len())
	log.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestAppendCtx_DoesNotLeak(t *testing.T) {
	base := AppendCtx(context.Background(), slog.Int("a", 1))
	left := AppendCtx(base, slog.Int("b", 2))
	right := AppendCtx(base, slog.Int("c", 3))

	assert.Len(t, base.Value(ctxKey{}), 1)
	assert.Equal(t, []slog.Attr{slog.Int("a", 1), slog.Int("b", 2)}, left.Value(ctxKey{}))
	assert.Equal(t, []slog.Attr{slog.Int("a", 1), slog.Int("c", 3)}, right.Value(ctxKey{}))
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pgmctl.log")
	w := FileWriter(Rotation{Path: path, MaxSizeMB: 1, MaxBackups: 1})
	log := Logger(w, false, slog.LevelDebug)
	log.Debug("to file")
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=\"to file\"")
}
