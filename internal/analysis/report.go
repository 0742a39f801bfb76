package analysis

import (
	"github.com/paveg/salesinsight/internal/dataset"
)

// Report bundles every result of an analysis run.
type Report struct {
	Quality         dataset.Quality
	TopN            int
	KPIs            KPIs
	Products        *ProductView
	Regions         *RegionView
	Temporal        *TemporalView
	Segments        *SegmentView
	Recommendations []string
}

// Analyze runs every aggregator over ds. The pipeline runs the same steps one
// at a time so each can be timed.
func Analyze(ds *dataset.Dataset, topN int) *Report {
	r := &Report{
		Quality:  ds.Quality(),
		TopN:     topN,
		KPIs:     CalculateKPIs(ds),
		Products: AggregateProducts(ds),
		Regions:  AggregateRegions(ds),
		Temporal: AggregateTemporal(ds),
		Segments: AggregateSegments(ds),
	}
	r.Recommendations = Recommend(r.KPIs, r.Products, r.Regions, r.Temporal)
	return r
}
