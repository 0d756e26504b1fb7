package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatorprobe_generations_total",
		Help: "Generate requests by outcome.",
	}, []string{"status"})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gatorprobe_generation_duration_seconds",
		Help:    "Time spent waiting on the LLM provider, retries included.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
	})

	PromptErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatorprobe_prompt_errors_total",
		Help: "Prompt assembly failures by error kind.",
	}, []string{"kind"})

	LLMRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatorprobe_llm_retries_total",
		Help: "Retry attempts issued against the LLM provider.",
	})

	CatalogLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatorprobe_catalog_loads_total",
		Help: "Catalog files read on a cache miss.",
	}, []string{"kind"})
)
