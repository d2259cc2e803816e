package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ThreadReconstructor groups emails into ordered threads with metrics. The
// returned count includes single-email threads excluded from the map.
type ThreadReconstructor interface {
	Reconstruct(emails []*Email, explicit []ThreadRecord) (map[string]*Thread, int)
}

// DepartmentAggregator computes per-department insights
type DepartmentAggregator interface {
	Aggregate(emails []*Email) map[string]*DepartmentInsight
}

// EntityExtractor ranks key people and projects from the corpus
type EntityExtractor interface {
	ExtractKeyPeople(emails []*Email) KeyPeople
	ExtractKeyProjects(emails []*Email) []string
}

// AnalyzeOptions restricts an analysis run to a department's or a single
// person's sent email before the pipeline runs.
type AnalyzeOptions struct {
	Department string
	User       string
}

// AnalysisService is the core pipeline: it turns a loaded dataset into an
// analysis report. It holds no mutable state between runs; concurrent
// analyses of separate dataset snapshots are safe.
type AnalysisService struct {
	scorer      ConstraintScorer
	threads     ThreadReconstructor
	departments DepartmentAggregator
	entities    EntityExtractor
	recommender RecommendationGenerator
	logger      *zap.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	scorer ConstraintScorer,
	threads ThreadReconstructor,
	departments DepartmentAggregator,
	entities EntityExtractor,
	recommender RecommendationGenerator,
	logger *zap.Logger,
) *AnalysisService {
	return &AnalysisService{
		scorer:      scorer,
		threads:     threads,
		departments: departments,
		entities:    entities,
		recommender: recommender,
		logger:      logger,
	}
}

// Analyze runs the full pipeline over a dataset snapshot and produces the
// report. All stages degrade to smaller or empty substructures on partial
// input; only loading can fail, upstream of this call.
func (s *AnalysisService) Analyze(ctx context.Context, ds *Dataset, opts AnalyzeOptions) *AnalysisReport {
	emails := filterEmails(ds.Emails, opts)
	s.logger.Info("Analyzing dataset",
		zap.String("dataset", ds.Name),
		zap.Int("emails", len(emails)),
		zap.String("department_filter", opts.Department),
		zap.String("user_filter", opts.User))

	threads, threadCount := s.threads.Reconstruct(emails, ds.ExplicitThreads)
	threadMetrics := make(map[string]*ThreadMetrics, len(threads))
	for id, thread := range threads {
		metrics := thread.Metrics
		threadMetrics[id] = &metrics
	}

	scores := s.scorer.Score(ctx, emails)
	departmentInsights := s.departments.Aggregate(emails)
	keyPeople := s.entities.ExtractKeyPeople(emails)
	keyProjects := s.entities.ExtractKeyProjects(emails)

	recommendations, summary := s.recommender.Generate(scores, threadMetrics, keyPeople, keyProjects)

	report := &AnalysisReport{
		AnalysisID:         uuid.NewString(),
		Dataset:            ds.Name,
		EmailCount:         len(emails),
		ThreadCount:        threadCount,
		Constraints:        scores,
		DepartmentInsights: departmentInsights,
		ThreadMetrics:      threadMetrics,
		KeyPeople:          keyPeople,
		KeyProjects:        keyProjects,
		Recommendations:    recommendations,
		Summary:            summary,
		AnalyzedAt:         time.Now(),
	}

	s.logger.Info("Analysis complete",
		zap.String("analysis_id", report.AnalysisID),
		zap.Int("recommendations", len(recommendations)))
	return report
}

// filterEmails applies the optional department and user filters
func filterEmails(emails []*Email, opts AnalyzeOptions) []*Email {
	if opts.Department == "" && opts.User == "" {
		return emails
	}
	filtered := make([]*Email, 0, len(emails))
	for _, email := range emails {
		if email.Sender == nil {
			continue
		}
		if opts.Department != "" && email.Sender.Department != opts.Department {
			continue
		}
		if opts.User != "" && email.Sender.ID != opts.User && email.Sender.Name != opts.User {
			continue
		}
		filtered = append(filtered, email)
	}
	return filtered
}
