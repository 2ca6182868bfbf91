package fastforward

import "github.com/temirov/forksync/internal/fleet"

const (
	bucketHeaderTemplateConstant = "=== Status: %s ===\n"
	bucketEntryTemplateConstant  = "%s\n"
)

// StatusBuckets aggregates repository folder paths by verdict.
//
// Buckets render in the order verdicts were first recorded, and paths within a
// bucket keep their insertion order, so summary output mirrors processing order.
type StatusBuckets struct {
	orderedVerdicts []Verdict
	bucketContents  map[Verdict][]string
}

// NewStatusBuckets constructs an empty aggregator.
func NewStatusBuckets() *StatusBuckets {
	return &StatusBuckets{bucketContents: map[Verdict][]string{}}
}

// Record appends the folder path to the bucket named for the verdict.
func (buckets *StatusBuckets) Record(verdict Verdict, folderPath string) {
	if _, bucketExists := buckets.bucketContents[verdict]; !bucketExists {
		buckets.orderedVerdicts = append(buckets.orderedVerdicts, verdict)
	}
	buckets.bucketContents[verdict] = append(buckets.bucketContents[verdict], folderPath)
}

// RecordOutcome appends the outcome's folder path to its verdict bucket.
func (buckets *StatusBuckets) RecordOutcome(outcome RepositoryOutcome) {
	buckets.Record(outcome.Verdict, outcome.FolderPath)
}

// Verdicts returns the recorded verdicts in first-insertion order.
func (buckets *StatusBuckets) Verdicts() []Verdict {
	duplicated := make([]Verdict, len(buckets.orderedVerdicts))
	copy(duplicated, buckets.orderedVerdicts)
	return duplicated
}

// Paths returns the folder paths recorded under the verdict, in insertion order.
func (buckets *StatusBuckets) Paths(verdict Verdict) []string {
	recordedPaths := buckets.bucketContents[verdict]
	duplicated := make([]string, len(recordedPaths))
	copy(duplicated, recordedPaths)
	return duplicated
}

// Render prints every non-empty bucket as a labeled list of folder paths.
func (buckets *StatusBuckets) Render(reporter fleet.Reporter) {
	if reporter == nil {
		return
	}
	for _, verdict := range buckets.orderedVerdicts {
		reporter.Printf(bucketHeaderTemplateConstant, verdict)
		for _, folderPath := range buckets.bucketContents[verdict] {
			reporter.Printf(bucketEntryTemplateConstant, folderPath)
		}
	}
}
