package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RendersTotal counts layout renders served, by document kind.
	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lmt_renders_total",
		Help: "Proposal layout renders, by document kind.",
	}, []string{"kind"})

	// ExportsTotal counts export dispatches. channel is one of
	// pdf, pdf_fallback, whatsapp.
	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lmt_exports_total",
		Help: "Document exports, by channel and outcome.",
	}, []string{"channel", "outcome"})

	// NormalizationsTotal counts asset normalizer runs.
	NormalizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lmt_asset_normalizations_total",
		Help: "Asset normalizer runs, by outcome.",
	}, []string{"outcome"})
)
