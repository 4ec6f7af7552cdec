package ml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"ppi-predict/internal/svm"

	"github.com/rs/zerolog/log"
)

const (
	reportFile  = "evaluation_report.json"
	summaryFile = "evaluation_summary.txt"
	historyFile = "evaluation_history.json"
)

// Report is the outcome of one training run.
type Report struct {
	CreatedAt      time.Time     `json:"created_at"`
	Seed           uint64        `json:"seed"`
	TrainSize      int           `json:"train_size"`
	TestSize       int           `json:"test_size"`
	SupportVectors int           `json:"support_vectors"`
	Passes         int           `json:"passes"`
	Params         svm.Params    `json:"params"`
	Scores         Scores        `json:"scores"`
	AUCError       string        `json:"auc_error,omitempty"`
	Duration       time.Duration `json:"duration_ns"`
}

// AUCUndefined reports whether the run could not compute ROC-AUC.
func (r *Report) AUCUndefined() bool {
	return r.AUCError != "" || errors.Is(r.Scores.AUCErr, ErrUndefinedAUC)
}

// Reporter writes run reports to an output directory.
type Reporter struct {
	report     *Report
	outputPath string
}

// NewReporter creates a new reporter
func NewReporter(report *Report, outputPath string) *Reporter {
	return &Reporter{
		report:     report,
		outputPath: outputPath,
	}
}

// GenerateReport writes the JSON report, the text summary and appends the run
// to the evaluation history.
func (r *Reporter) GenerateReport() error {
	if err := os.MkdirAll(r.outputPath, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := r.generateJSONReport(); err != nil {
		return err
	}
	if err := r.generateSummary(); err != nil {
		return err
	}
	return r.appendHistory()
}

func (r *Reporter) generateJSONReport() error {
	path := filepath.Join(r.outputPath, reportFile)

	data, err := json.MarshalIndent(r.report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}

	log.Info().Str("file", path).Msg("JSON report generated")
	return nil
}

func (r *Reporter) generateSummary() error {
	path := filepath.Join(r.outputPath, summaryFile)
	var buf bytes.Buffer
	r.writeSummary(&buf)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}

	log.Info().Str("file", path).Msg("Summary report generated")
	return nil
}

func (r *Reporter) writeSummary(w io.Writer) {
	rep := r.report

	fmt.Fprintf(w, "INTERACTION CLASSIFIER EVALUATION\n")
	fmt.Fprintf(w, "=================================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", rep.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Training time: %s\n\n", rep.Duration)

	fmt.Fprintf(w, "DATA\n")
	fmt.Fprintf(w, "----\n")
	fmt.Fprintf(w, "Train rows: %d\n", rep.TrainSize)
	fmt.Fprintf(w, "Test rows: %d\n", rep.TestSize)
	fmt.Fprintf(w, "Shuffle seed: %d\n\n", rep.Seed)

	fmt.Fprintf(w, "MODEL\n")
	fmt.Fprintf(w, "-----\n")
	fmt.Fprintf(w, "Kernel: rbf (C=%g, gamma=%g)\n", rep.Params.C, rep.Params.Gamma)
	fmt.Fprintf(w, "Support vectors: %d\n", rep.SupportVectors)
	fmt.Fprintf(w, "Optimizer passes: %d\n\n", rep.Passes)

	fmt.Fprintf(w, "SCORES\n")
	fmt.Fprintf(w, "------\n")
	fmt.Fprintf(w, "accuracy = %.4f\n", rep.Scores.Accuracy)
	fmt.Fprintf(w, "precision = %.4f\n", rep.Scores.Precision)
	fmt.Fprintf(w, "recall = %.4f\n", rep.Scores.Recall)
	if rep.AUCUndefined() {
		fmt.Fprintf(w, "auc = n/a (%s)\n", rep.AUCError)
	} else {
		fmt.Fprintf(w, "auc = %.4f\n", rep.Scores.AUC)
	}
}

// appendHistory keeps every run in a JSON array, newest last.
func (r *Reporter) appendHistory() error {
	path := filepath.Join(r.outputPath, historyFile)

	history, err := LoadHistory(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Failed to load evaluation history, starting fresh")
		history = nil
	}
	history = append(history, *r.report)

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// LoadHistory reads the evaluation history file. A missing file is an empty history.
func LoadHistory(path string) ([]Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history []Report
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// PrintSummary prints a summary to stdout.
func (r *Reporter) PrintSummary() {
	r.FprintSummary(os.Stdout)
}

// FprintSummary prints the console summary to w.
func (r *Reporter) FprintSummary(w io.Writer) {
	rep := r.report
	fmt.Fprintln(w, "\n=== EVALUATION RESULTS ===")
	fmt.Fprintf(w, "Train/Test: %d/%d\n", rep.TrainSize, rep.TestSize)
	fmt.Fprintf(w, "accuracy = %.4f\n", rep.Scores.Accuracy)
	fmt.Fprintf(w, "precision = %.4f\n", rep.Scores.Precision)
	fmt.Fprintf(w, "recall = %.4f\n", rep.Scores.Recall)
	if rep.AUCUndefined() {
		fmt.Fprintf(w, "auc = n/a (%s)\n", rep.AUCError)
	} else {
		fmt.Fprintf(w, "auc = %.4f\n", rep.Scores.AUC)
	}
	fmt.Fprintln(w, "==========================")
}
