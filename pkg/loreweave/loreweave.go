// Package loreweave classifies, clusters, and relates heterogeneous
// world-building records. One call ingests a batch of (id, content)
// pairs and returns, for every record, a confidence-merged category
// decision, discovered relationships, ensemble cluster assignments, and
// a routed bucket for downstream processor dispatch. Processing is
// batch-synchronous and fail-loud: any stage error rejects the whole
// batch.
package loreweave

import (
	"context"
	"fmt"
	"log"

	"github.com/loreweave/loreweave/pkg/loreweave/cluster"
	"github.com/loreweave/loreweave/pkg/loreweave/config"
	"github.com/loreweave/loreweave/pkg/loreweave/ingest"
	"github.com/loreweave/loreweave/pkg/loreweave/internalerr"
	"github.com/loreweave/loreweave/pkg/loreweave/merge"
	"github.com/loreweave/loreweave/pkg/loreweave/pattern"
	"github.com/loreweave/loreweave/pkg/loreweave/reduce"
	"github.com/loreweave/loreweave/pkg/loreweave/relate"
	"github.com/loreweave/loreweave/pkg/loreweave/report"
	"github.com/loreweave/loreweave/pkg/loreweave/route"
	"github.com/loreweave/loreweave/pkg/loreweave/vectorize"
)

// RawRecord is one raw (id, content) unit to be classified. Immutable;
// supplied by the external store.
type RawRecord struct {
	ID      string
	Content string
}

// Options configures an Engine. Universe and Pattern are mandatory:
// the engine refuses to construct without both signals available.
type Options struct {
	Universe  *route.Universe
	Pattern   pattern.Router
	Tokenizer *ingest.Tokenizer // optional; defaults to built-in stopwords

	Weights    merge.Weights      // zero value -> merge.DefaultWeights
	Clustering cluster.Config     // zero value -> cluster.DefaultConfig
	Topics     reduce.TopicConfig // zero value -> reduce.DefaultTopicConfig

	Logger *log.Logger // optional; receives advisory warnings
}

// Engine is the unified classification and clustering engine facade.
type Engine struct {
	universe   *route.Universe
	router     pattern.Router
	tokenizer  *ingest.Tokenizer
	scorer     *merge.Scorer
	clustering cluster.Config
	topics     reduce.TopicConfig
	reporter   *report.Builder
	logger     *log.Logger

	stats Stats
}

// Stats is the per-engine accumulator of processed/classified/routed
// counts across batches. Execution is single-threaded; no locking.
type Stats struct {
	BatchesProcessed     int64
	BatchesRejected      int64
	RecordsProcessed     int64
	RecordsClassified    int64
	RecordsRouted        int64
	RecordsUncategorized int64
	RelationshipsFound   int64
	AnomaliesFlagged     int64
}

// New creates an Engine. A nil pattern router or an empty universe is a
// construction error, not a degraded mode.
func New(opts Options) (*Engine, error) {
	if opts.Pattern == nil {
		return nil, fmt.Errorf("new engine: %w: pattern router is mandatory", internalerr.ErrInvalidConfig)
	}
	if opts.Universe == nil || len(opts.Universe.AllNames()) == 0 {
		return nil, fmt.Errorf("new engine: %w: universe is mandatory", internalerr.ErrInvalidConfig)
	}

	weights := opts.Weights
	if weights == (merge.Weights{}) {
		weights = merge.DefaultWeights()
	}
	clustering := opts.Clustering
	if clustering == (cluster.Config{}) {
		clustering = cluster.DefaultConfig()
	}
	topics := opts.Topics
	if topics == (reduce.TopicConfig{}) {
		topics = reduce.DefaultTopicConfig()
	}
	tokenizer := opts.Tokenizer
	if tokenizer == nil {
		tokenizer = ingest.NewTokenizer(config.DefaultStopwords())
	}

	return &Engine{
		universe:   opts.Universe,
		router:     opts.Pattern,
		tokenizer:  tokenizer,
		scorer:     merge.NewScorer(weights),
		clustering: clustering,
		topics:     topics,
		reporter:   report.New(),
		logger:     opts.Logger,
	}, nil
}

// ClusterAnalysis is the observability view of the ensemble clusterers.
// Nothing downstream branches on it.
type ClusterAnalysis struct {
	FixedClusterCount   int
	DensityClusterCount int
	NoiseCount          int
	LargestClusterSize  int
	FixedSizes          map[int]int
	DensitySizes        map[int]int
}

// BatchResult aggregates everything one invocation produced. It is the
// sole hand-off artifact to external collaborators.
type BatchResult struct {
	RunID           string
	Classifications []merge.FinalClassification
	Relationships   []relate.Relationship
	ClusterAnalysis ClusterAnalysis
	AnomalyCount    int
	Clusters        map[route.Key]*route.Bucket
	Summary         report.Summary
	SuccessRate     float64
	Warnings        []string
	TopicsModeled   bool
}

// Stats returns a copy of the engine's accumulator.
func (e *Engine) Stats() Stats {
	return e.stats
}

// ProcessBatch runs the full pipeline over one batch of records and
// returns only after every stage has completed. Any stage failure
// aborts the batch; nothing is retried and no partial result escapes.
func (e *Engine) ProcessBatch(ctx context.Context, records []RawRecord) (*BatchResult, error) {
	if err := validate(records); err != nil {
		return nil, err
	}
	e.stats.BatchesProcessed++
	e.stats.RecordsProcessed += int64(len(records))

	knownNames := e.universe.AllNames()
	n := len(records)

	contents := make([]string, n)
	payloads := make([]ingest.Payload, n)
	features := make([]ingest.Features, n)
	for i, rec := range records {
		contents[i] = rec.Content
		payloads[i] = ingest.ExtractPayload(rec.Content, knownNames)
		features[i] = ingest.ExtractFeatures(rec.Content)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reps, err := vectorize.Build(contents, e.tokenizer)
	if err != nil {
		e.stats.BatchesRejected++
		return nil, err
	}

	embeddings, err := reduce.Embed(reps.Rich)
	if err != nil {
		e.stats.BatchesRejected++
		return nil, err
	}
	topicDists := reduce.Topics(reps.Rich, e.topics)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analysis, err := cluster.Analyze(embeddings, e.clustering)
	if err != nil {
		e.stats.BatchesRejected++
		return nil, err
	}

	relRecords := make([]relate.Record, n)
	for i, rec := range records {
		relRecords[i] = relate.Record{
			ID:        rec.ID,
			Embedding: embeddings[i],
			TypeGuess: payloads[i].TypeGuess,
		}
	}
	relationships := relate.Discover(relRecords)

	// Statistical stream.
	mlStream := make([]merge.MLClassification, n)
	for i, rec := range records {
		var topics []float64
		if topicDists != nil {
			topics = topicDists[i]
		}
		mlStream[i] = merge.MLClassification{
			ID:                rec.ID,
			Category:          payloads[i].TypeGuess,
			Confidence:        e.scorer.Confidence(payloads[i], features[i], analysis.Outliers[i]),
			ClusterID:         analysis.KMeansLabels[i],
			DensityClusterID:  analysis.DensityLabels[i],
			IsOutlier:         analysis.Outliers[i],
			TopicDistribution: topics,
		}
	}

	// Deterministic stream.
	patterns := make(map[string]pattern.Classification, n)
	for _, rec := range records {
		pc, err := e.router.Classify(rec.ID, rec.Content)
		if err != nil {
			e.stats.BatchesRejected++
			return nil, err
		}
		patterns[rec.ID] = pc
	}

	merged, err := merge.Merge(mlStream, patterns)
	if err != nil {
		e.stats.BatchesRejected++
		return nil, err
	}

	// Bucket routing: one fresh bucket table per run.
	bucketRouter, err := route.NewRouter(e.universe)
	if err != nil {
		return nil, err
	}
	routed := 0
	for i, rec := range records {
		if _, ok := bucketRouter.Route(rec.ID, rec.Content, payloads[i].DeclaredType); ok {
			routed++
		}
	}

	summary := e.reporter.Build(bucketRouter, n)

	e.stats.RecordsClassified += int64(len(merged.Classifications))
	e.stats.RecordsRouted += int64(routed)
	e.stats.RecordsUncategorized += int64(n - routed)
	e.stats.RelationshipsFound += int64(len(relationships))
	e.stats.AnomaliesFlagged += int64(analysis.AnomalyCount)

	for _, w := range merged.Warnings {
		e.logf("warning: %s", w)
	}

	return &BatchResult{
		RunID:           summary.RunID,
		Classifications: merged.Classifications,
		Relationships:   relationships,
		ClusterAnalysis: ClusterAnalysis{
			FixedClusterCount:   analysis.FixedClusterCount,
			DensityClusterCount: analysis.DensityClusterCount,
			NoiseCount:          analysis.NoiseCount,
			LargestClusterSize:  analysis.LargestClusterSize,
			FixedSizes:          analysis.KMeansSizes,
			DensitySizes:        analysis.DensitySizes,
		},
		AnomalyCount:  analysis.AnomalyCount,
		Clusters:      bucketRouter.Buckets(),
		Summary:       summary,
		SuccessRate:   merged.SuccessRate,
		Warnings:      merged.Warnings,
		TopicsModeled: topicDists != nil,
	}, nil
}

func validate(records []RawRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("process batch: %w: empty batch", internalerr.ErrInvalidInput)
	}
	for i, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("process batch: %w: record %d missing id", internalerr.ErrInvalidInput, i)
		}
		if rec.Content == "" {
			return fmt.Errorf("process batch: %w: record %s missing content", internalerr.ErrInvalidInput, rec.ID)
		}
	}
	return nil
}

func (e *Engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
