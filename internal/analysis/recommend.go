package analysis

import (
	"fmt"
)

// RecommendationCount is the fixed number of statements Recommend returns.
const RecommendationCount = 5

// Recommend derives the five business recommendations, always in the same
// order: product, region, seasonality, order value, segmentation. Inputs that
// are empty or undefined render as "undefined"; the count never changes.
func Recommend(kpis KPIs, products *ProductView, regions *RegionView, temporal *TemporalView) []string {
	topProduct, topProductRevenue := "undefined", "undefined"
	if top := products.Top(1); len(top) == 1 {
		topProduct, topProductRevenue = top[0].Product, Money(top[0].Revenue)
	}

	topRegion, topShare := "undefined", "undefined"
	if top := regions.Top(1); len(top) == 1 {
		topRegion = top[0].Region
		topShare = top[0].MarketShare.Format("%.1f%%")
	}

	peak, trough := "undefined", "undefined"
	if m, err := temporal.Peak(); err == nil {
		peak = m.Name
	}
	if m, err := temporal.Trough(); err == nil {
		trough = m.Name
	}

	aov := "undefined"
	if kpis.AvgOrderValue.Defined() {
		aov = fmt.Sprintf("$%.2f", kpis.AvgOrderValue.Value)
	}

	return []string{
		fmt.Sprintf("1. PRODUCT STRATEGY: %s is the top revenue generator (%s). "+
			"Consider expanding inventory and creating complementary product bundles.",
			topProduct, topProductRevenue),
		fmt.Sprintf("2. REGIONAL EXPANSION: %s accounts for %s of total revenue. "+
			"Invest in marketing campaigns in underperforming regions to balance market presence.",
			topRegion, topShare),
		fmt.Sprintf("3. SEASONAL PLANNING: Sales peak in %s and dip in %s. "+
			"Plan inventory and promotional campaigns accordingly. Consider flash sales during low-revenue months.",
			peak, trough),
		fmt.Sprintf("4. INCREASE AOV: Current average order value is %s. "+
			"Implement cross-selling strategies, bundle deals, and free shipping thresholds "+
			"to increase order values by 15-20%%.", aov),
		"5. CUSTOMER SEGMENTATION: Focus on high-value enterprise customers while " +
			"implementing loyalty programs for individual buyers to increase retention and lifetime value.",
	}
}
