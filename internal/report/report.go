// Package report collects per-item outcomes of a batch run and renders
// them as a human summary or a YAML file.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Item records a single skipped or failed work item.
type Item struct {
	Name   string `yaml:"name"`
	Reason string `yaml:"reason"`
}

// Summary aggregates the outcome of one batch. It is safe for
// concurrent use by pool workers.
type Summary struct {
	Operation string `yaml:"operation"`
	Timestamp string `yaml:"timestamp"`
	Completed int    `yaml:"completed"`
	Skipped   int    `yaml:"skipped"`
	Failed    int    `yaml:"failed"`
	Items     []Item `yaml:"items,omitempty"`

	mu sync.Mutex
}

// New creates a summary for the named operation.
func New(operation string) *Summary {
	return &Summary{
		Operation: operation,
		Timestamp: time.Now().Format("2006-01-02_15-04-05"),
	}
}

// Complete counts one successfully processed item.
func (s *Summary) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Completed++
}

// Skip counts one skipped item with the reason it was skipped.
func (s *Summary) Skip(name, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Skipped++
	s.Items = append(s.Items, Item{Name: name, Reason: reason})
}

// Fail counts one failed item with the error that failed it.
func (s *Summary) Fail(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed++
	s.Items = append(s.Items, Item{Name: name, Reason: err.Error()})
}

// Print writes the human-readable batch summary to stdout.
func (s *Summary) Print() {
	fmt.Printf("\n%s complete!\n", s.Operation)
	fmt.Printf("  Completed: %d\n", s.Completed)
	fmt.Printf("  Skipped:   %d\n", s.Skipped)
	fmt.Printf("  Failed:    %d\n", s.Failed)
	for _, item := range s.Items {
		fmt.Printf("    %s: %s\n", item.Name, item.Reason)
	}
}

// SaveYAML writes the summary to a YAML file at path.
func (s *Summary) SaveYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
