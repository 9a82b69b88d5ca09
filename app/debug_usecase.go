package app

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/codelens-ai/pydebug/domain"
)

// AnalyzeOptions configures a multi-file analysis run
type AnalyzeOptions struct {
	Paths           []string
	Recursive       bool
	ExcludePatterns []string
	Explain         bool
	EnabledRules    []domain.RuleID
	ErrorMessage    string

	// MaxFileSize skips files larger than this many bytes; 0 means no cap
	MaxFileSize int64
}

// DebugUseCase orchestrates the debugging workflow
type DebugUseCase struct {
	service    domain.DebugService
	executor   domain.ParallelExecutor
	fileHelper *FileHelper
}

// NewDebugUseCase creates a new debug use case
func NewDebugUseCase(service domain.DebugService, executor domain.ParallelExecutor) *DebugUseCase {
	return &DebugUseCase{
		service:    service,
		executor:   executor,
		fileHelper: NewFileHelper(),
	}
}

// ExecuteSource analyzes a single in-memory source
func (uc *DebugUseCase) ExecuteSource(ctx context.Context, req domain.DebugRequest) (*domain.Report, error) {
	return uc.service.Analyze(ctx, req)
}

// ExecuteFiles analyzes every Python file reachable from the given paths.
// Files are analyzed in parallel; reports are returned in path order.
func (uc *DebugUseCase) ExecuteFiles(ctx context.Context, opts AnalyzeOptions) ([]*domain.Report, *domain.AnalyzeSummary, error) {
	if len(opts.Paths) == 0 {
		return nil, nil, domain.NewInvalidInputError("no input paths specified", nil)
	}

	files, err := ResolveFilePaths(uc.fileHelper, opts.Paths, opts.Recursive, opts.ExcludePatterns)
	if err != nil {
		return nil, nil, domain.NewFileNotFoundError("failed to collect files", err)
	}
	if len(files) == 0 {
		return nil, nil, domain.NewInvalidInputError("no Python files found in the specified paths", nil)
	}

	var mu sync.Mutex
	reports := make(map[string]*domain.Report, len(files))

	tasks := make([]domain.ExecutableTask, 0, len(files))
	for _, file := range files {
		tasks = append(tasks, &fileAnalysisTask{
			useCase: uc,
			file:    file,
			opts:    opts,
			record: func(file string, report *domain.Report) {
				mu.Lock()
				reports[file] = report
				mu.Unlock()
			},
		})
	}

	if err := uc.executor.Execute(ctx, tasks); err != nil {
		return nil, nil, domain.NewAnalysisError("analysis failed", err)
	}

	sort.Strings(files)
	ordered := make([]*domain.Report, 0, len(reports))
	summary := &domain.AnalyzeSummary{}
	for _, file := range files {
		report, ok := reports[file]
		if !ok {
			continue
		}
		ordered = append(ordered, report)
		summary.Add(report)
		if report.ParseFailure != "" {
			summary.ParseFailures++
		}
	}

	return ordered, summary, nil
}

// analyzeFile reads and analyzes a single file
func (uc *DebugUseCase) analyzeFile(ctx context.Context, file string, opts AnalyzeOptions) (*domain.Report, error) {
	if opts.MaxFileSize > 0 {
		size, err := uc.fileHelper.FileSize(file)
		if err != nil {
			return nil, domain.NewFileNotFoundError(file, err)
		}
		if size > opts.MaxFileSize {
			return nil, domain.NewInvalidInputError(
				fmt.Sprintf("%s exceeds the maximum file size (%d bytes)", file, opts.MaxFileSize), nil)
		}
	}

	source, err := uc.fileHelper.ReadFile(file)
	if err != nil {
		return nil, domain.NewFileNotFoundError(file, err)
	}

	return uc.service.Analyze(ctx, domain.DebugRequest{
		Source:       string(source),
		FileName:     file,
		ErrorMessage: opts.ErrorMessage,
		Explain:      opts.Explain,
		EnabledRules: opts.EnabledRules,
	})
}

// fileAnalysisTask adapts one file analysis to the executor
type fileAnalysisTask struct {
	useCase *DebugUseCase
	file    string
	opts    AnalyzeOptions
	record  func(file string, report *domain.Report)
}

// Name identifies the task in error messages
func (t *fileAnalysisTask) Name() string {
	return fmt.Sprintf("analyze %s", t.file)
}

// IsEnabled reports whether the task should run
func (t *fileAnalysisTask) IsEnabled() bool {
	return true
}

// Execute runs the file analysis
func (t *fileAnalysisTask) Execute(ctx context.Context) (interface{}, error) {
	report, err := t.useCase.analyzeFile(ctx, t.file, t.opts)
	if err != nil {
		return nil, err
	}
	t.record(t.file, report)
	return report, nil
}
