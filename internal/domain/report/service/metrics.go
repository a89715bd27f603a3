package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "report_records_parsed_total",
		Help: "Invoice records extracted from status reports.",
	})

	diagnosticsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "report_diagnostics_total",
		Help: "Extraction diagnostics flagged for human review.",
	})

	extractionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "report_extraction_failures_total",
		Help: "Source documents that could not be read at all.",
	})
)
