package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/orgflow/constraint-analyzer/internal/core"
	"github.com/orgflow/constraint-analyzer/internal/dataset"
	"github.com/orgflow/constraint-analyzer/internal/di"
	"github.com/orgflow/constraint-analyzer/internal/factory"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	loader *dataset.Loader,
	service *core.AnalysisService,
	reportCache core.ReportCache,
	cacheFactory *factory.CacheFactory,
	embedder core.EmbeddingClient,
) error {
	defer logger.Sync()

	if flags.DatasetPath == "" {
		return fmt.Errorf("no dataset specified, use -dataset")
	}

	ctx := context.Background()
	opts := core.AnalyzeOptions{
		Department: flags.Department,
		User:       flags.User,
	}
	cacheKey := core.CacheKey(filepath.Base(flags.DatasetPath), opts.Department, opts.User)

	startTime := time.Now()
	report, cached := lookupCachedReport(ctx, reportCache, cacheKey, logger)

	if report == nil {
		ds, err := loader.Load(flags.DatasetPath)
		if err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}
		logger.Info("Dataset loaded",
			zap.String("dataset", ds.Name),
			zap.Int("emails", len(ds.Emails)))

		report = service.Analyze(ctx, ds, opts)
		storeCachedReport(ctx, reportCache, cacheFactory, cacheKey, report, logger)
	}

	printReport(report, cached, time.Since(startTime))

	if flags.OutputFile != "" {
		if err := writeReportFile(flags.OutputFile, report); err != nil {
			return err
		}
		logger.Info("Report written", zap.String("file", flags.OutputFile))
	}

	// Close any resources that need closing
	if closer, ok := embedder.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close embedding client", zap.Error(err))
		}
	}
	if stopper, ok := reportCache.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	return nil
}

// lookupCachedReport returns a previously computed report for the key, if any
func lookupCachedReport(ctx context.Context, reportCache core.ReportCache, key string, logger *zap.Logger) (*core.AnalysisReport, bool) {
	if reportCache == nil {
		return nil, false
	}
	entry, err := reportCache.Get(ctx, key)
	if err != nil {
		logger.Debug("Cache miss", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	logger.Info("Using cached report",
		zap.String("key", key),
		zap.Time("created_at", entry.CreatedAt))
	return entry.Report, true
}

// storeCachedReport saves a freshly computed report under the key
func storeCachedReport(
	ctx context.Context,
	reportCache core.ReportCache,
	cacheFactory *factory.CacheFactory,
	key string,
	report *core.AnalysisReport,
	logger *zap.Logger,
) {
	if reportCache == nil {
		return
	}
	ttl, err := cacheFactory.GetCacheTTL()
	if err != nil {
		logger.Warn("Invalid cache TTL, skipping cache store", zap.Error(err))
		return
	}
	if err := reportCache.Set(ctx, core.NewCacheEntry(key, report, ttl)); err != nil {
		logger.Warn("Failed to cache report", zap.String("key", key), zap.Error(err))
	}
}

// printReport renders the report sections to stdout
func printReport(report *core.AnalysisReport, cached bool, duration time.Duration) {
	fmt.Printf("\n=== Analysis Report ===\n")
	fmt.Printf("Analysis ID: %s\n", report.AnalysisID)
	fmt.Printf("Dataset: %s\n", report.Dataset)
	fmt.Printf("Emails analyzed: %d\n", report.EmailCount)
	fmt.Printf("Threads reconstructed: %d\n", report.ThreadCount)
	if cached {
		fmt.Printf("Source: cache\n")
	}
	fmt.Printf("Processing time: %v\n", duration)

	fmt.Printf("\n=== Constraint Scores ===\n")
	for _, constraintType := range core.ConstraintTypes {
		fmt.Printf("%-25s %.4f\n", constraintType, report.Constraints[constraintType])
	}

	if len(report.DepartmentInsights) > 0 {
		fmt.Printf("\n=== Departments ===\n")
		names := make([]string, 0, len(report.DepartmentInsights))
		for name := range report.DepartmentInsights {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			insight := report.DepartmentInsights[name]
			fmt.Printf("%-15s emails=%d internal=%d external=%d\n",
				name, insight.EmailCount, insight.InternalCommunication, insight.ExternalCommunication)
		}
	}

	if len(report.KeyPeople) > 0 {
		fmt.Printf("\n=== Key People ===\n")
		roles := make([]string, 0, len(report.KeyPeople))
		for role := range report.KeyPeople {
			roles = append(roles, role)
		}
		sort.Strings(roles)
		for _, role := range roles {
			fmt.Printf("%-20s %s\n", role, strings.Join(report.KeyPeople[role], ", "))
		}
	}

	if len(report.KeyProjects) > 0 {
		fmt.Printf("\n=== Key Projects ===\n")
		fmt.Printf("%s\n", strings.Join(report.KeyProjects, ", "))
	}

	if len(report.Recommendations) > 0 {
		fmt.Printf("\n=== Recommendations ===\n")
		for i, rec := range report.Recommendations {
			fmt.Printf("%d. [%s] %s (confidence %.2f)\n", i+1, rec.Priority, rec.Title, rec.Confidence)
			fmt.Printf("   %s\n", rec.Description)
			for _, action := range rec.Actions {
				fmt.Printf("   - %s\n", action)
			}
		}
	}

	fmt.Printf("\n=== Summary ===\n%s\n", report.Summary)
}

// writeReportFile writes the full report as indented JSON
func writeReportFile(path string, report *core.AnalysisReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
