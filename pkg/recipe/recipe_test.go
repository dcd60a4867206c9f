package recipe

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpfielding/pgm.go/pkg/pgm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *pgm.Image {
	t.Helper()
	img, err := pgm.ReadBuffer([]byte("P2\n2 2\n255\n0 64 128 255\n"))
	require.NoError(t, err)
	return img
}

func TestParse(t *testing.T) {
	rc, err := Parse(strings.NewReader(`
steps:
  - op: negative
  - op: threshold
    k: 100
  - op: gamma
    y: 0.5
  - op: log
    c: -2
  - op: equalize
`))
	require.NoError(t, err)
	require.Len(t, rc.Steps, 5)
	assert.Equal(t, "negative", rc.Steps[0].String())
	assert.Equal(t, "threshold(k=100)", rc.Steps[1].String())
	assert.Equal(t, "gamma(c=1, y=0.5)", rc.Steps[2].String())
	assert.Equal(t, "log(c=-2)", rc.Steps[3].String())
	assert.Equal(t, "equalize", rc.Steps[4].String())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"UnknownOp", "steps:\n  - op: blur\n", ErrUnknownStep},
		{"ThresholdNoK", "steps:\n  - op: threshold\n", ErrMissingParam},
		{"GammaNoY", "steps:\n  - op: gamma\n    c: 2\n", ErrMissingParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse(strings.NewReader("steps:\n  - op: negative\n    radius: 3\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestParse_Empty(t *testing.T) {
	rc, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rc.Steps)
}

func TestApply(t *testing.T) {
	k := 100
	rc := &Recipe{Steps: []Step{{Op: OpNegative}, {Op: OpThreshold, K: &k}}}

	img := sample(t)
	require.NoError(t, rc.Apply(context.Background(), img))
	// negative gives 255 191 127 0
	assert.Equal(t, []int{255, 255, 255, 0}, img.Pix)
}

func TestApply_Reset(t *testing.T) {
	rc := &Recipe{Steps: []Step{{Op: OpNegative}, {Op: OpReset}, {Op: OpEqualize}}}
	img := sample(t)
	require.NoError(t, rc.Apply(context.Background(), img))
	assert.Equal(t, []int{64, 128, 192, 255}, img.Pix)
}

func TestApply_StopsOnError(t *testing.T) {
	zero := 0.0
	rc := &Recipe{Steps: []Step{{Op: OpNegative}, {Op: OpLog, C: &zero}, {Op: OpNegative}}}
	img := sample(t)
	err := rc.Apply(context.Background(), img)
	require.Error(t, err)
	assert.ErrorIs(t, err, pgm.ErrDegenerateRescale)
	assert.Contains(t, err.Error(), "step 1 (log)")
	assert.Equal(t, []int{255, 191, 127, 0}, img.Pix)
}

func TestApply_InvalidBeforeTouching(t *testing.T) {
	rc := &Recipe{Steps: []Step{{Op: OpNegative}, {Op: "sharpen"}}}
	img := sample(t)
	assert.ErrorIs(t, rc.Apply(context.Background(), img), ErrUnknownStep)
	assert.Equal(t, []int{0, 64, 128, 255}, img.Pix)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - op: negative\n"), 0644))

	rc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []Step{{Op: OpNegative}}, rc.Steps)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
