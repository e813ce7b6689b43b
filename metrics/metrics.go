package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	UploadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assessment_uploads_total",
		Help: "Number of successfully ingested batch uploads.",
	})

	RecordsIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assessment_records_ingested_total",
		Help: "Number of records created from uploaded files.",
	})

	AssessmentsSubmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assessment_submissions_total",
		Help: "Number of assessment submissions, including score updates.",
	})

	ExportsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assessment_exports_total",
		Help: "Number of generated result exports.",
	})
)

func init() {
	prometheus.MustRegister(
		UploadsTotal,
		RecordsIngestedTotal,
		AssessmentsSubmittedTotal,
		ExportsTotal,
	)
}
