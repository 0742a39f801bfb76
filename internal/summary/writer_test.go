package summary_test

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/paveg/salesinsight/internal/analysis"
	"github.com/paveg/salesinsight/internal/summary"
	"github.com/paveg/salesinsight/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pageObject = regexp.MustCompile(`/Type\s*/Page\b`)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
}

func TestWriterWrite(t *testing.T) {
	w := summary.NewWriter(t.TempDir())
	w.Now = fixedNow

	path, err := w.Write(analysis.Analyze(testutil.SampleDataset(t), 10))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Dir, summary.FileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Len(t, pageObject.FindAll(data, -1), 1, "summary fits on one page")
}

func TestWriterIsDeterministic(t *testing.T) {
	rep := analysis.Analyze(testutil.SampleDataset(t), 10)

	read := func() []byte {
		w := summary.NewWriter(t.TempDir())
		w.Now = fixedNow
		path, err := w.Write(rep)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, read(), read())
}

func TestWriterMissingDirectory(t *testing.T) {
	w := summary.NewWriter(filepath.Join(t.TempDir(), "missing"))
	_, err := w.Write(analysis.Analyze(testutil.SampleDataset(t), 10))
	assert.Error(t, err)
}

func TestRenderBanner(t *testing.T) {
	data, err := summary.RenderBanner(analysis.CalculateKPIs(testutil.SampleDataset(t)))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, summary.BannerWidth, img.Bounds().Dx())
	assert.Equal(t, summary.BannerHeight, img.Bounds().Dy())
}

func TestWrap(t *testing.T) {
	text := "1. PRODUCT STRATEGY: Laptop is the top revenue generator ($2,400.00). " +
		"Consider expanding inventory and creating complementary product bundles."
	lines := summary.Wrap(text, 90)

	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1. PRODUCT STRATEGY:"))
	assert.True(t, strings.HasPrefix(lines[1], "   "))
	for _, l := range lines {
		assert.Less(t, len(l), 90)
	}
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))

	assert.Empty(t, summary.Wrap("   ", 90))
	assert.Equal(t, []string{"short"}, summary.Wrap("short", 90))
}
