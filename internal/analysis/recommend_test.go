package analysis_test

import (
	"strings"
	"testing"

	"github.com/paveg/salesinsight/internal/analysis"
	"github.com/paveg/salesinsight/internal/dataset"
	"github.com/paveg/salesinsight/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend(t *testing.T) {
	t.Run("sample dataset", func(t *testing.T) {
		recs := analysis.Analyze(testutil.SampleDataset(t), 10).Recommendations

		require.Len(t, recs, analysis.RecommendationCount)
		for i, prefix := range []string{
			"1. PRODUCT STRATEGY:", "2. REGIONAL EXPANSION:", "3. SEASONAL PLANNING:",
			"4. INCREASE AOV:", "5. CUSTOMER SEGMENTATION:",
		} {
			assert.True(t, strings.HasPrefix(recs[i], prefix), recs[i])
		}
		assert.Contains(t, recs[0], "Laptop is the top revenue generator ($2,400.00)")
		assert.Contains(t, recs[1], "East accounts for")
		assert.Contains(t, recs[2], "Sales peak in February and dip in July")
		assert.Contains(t, recs[3], "Current average order value is $593.75")
	})

	t.Run("undefined inputs keep five statements", func(t *testing.T) {
		tx := singleTransaction()
		tx.Missing = dataset.ColRevenue
		recs := analysis.Analyze(testutil.NewDataset(t, []dataset.Transaction{tx}), 10).Recommendations

		require.Len(t, recs, analysis.RecommendationCount)
		assert.Contains(t, recs[2], "Sales peak in undefined and dip in undefined")
		assert.Contains(t, recs[3], "average order value is undefined")
	})

	t.Run("deterministic", func(t *testing.T) {
		first := analysis.Analyze(testutil.SampleDataset(t, testutil.WithRepeat(3)), 5)
		second := analysis.Analyze(testutil.SampleDataset(t, testutil.WithRepeat(3)), 5)
		assert.Equal(t, first.Recommendations, second.Recommendations)
		assert.Equal(t, first.Products.Ranked(), second.Products.Ranked())
		assert.Equal(t, first.Temporal.Monthly(), second.Temporal.Monthly())
	})
}
