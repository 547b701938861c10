// Package report builds and renders the exported privacy documents.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/usestring/privlabel/pkg/types"
)

// Build assembles the privacy report document for one analyzed log.
func Build(logPath string, analysis *types.AnalysisResult, lbl *types.PrivacyLabel, at time.Time) *types.ReportDocument {
	return &types.ReportDocument{
		AnalysisDate:    at,
		LogFile:         logPath,
		TrafficAnalysis: analysis,
		PrivacyLabel:    lbl,
	}
}

// WriteJSON writes doc to path as indented JSON.
func WriteJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// Render prints the human-readable privacy label summary.
func Render(w io.Writer, lbl *types.PrivacyLabel) {
	line := "============================================================"
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "PRIVACY LABEL SUMMARY")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "System: %s\n", lbl.System)
	fmt.Fprintf(w, "Privacy Score: %d/100\n", lbl.PrivacyScore)

	fmt.Fprintln(w, "\nData that exits device:")
	for _, item := range lbl.DataExitsDevice {
		fmt.Fprintf(w, "  - %s\n", item)
	}

	fmt.Fprintln(w, "\nWho has access:")
	for _, item := range lbl.WhoHasAccess {
		fmt.Fprintf(w, "  - %s\n", item)
	}

	fmt.Fprintf(w, "\nRetention Policy: %s\n", lbl.RetentionPolicy)

	if len(lbl.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, rec := range lbl.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
}

// RenderComparison prints the key differences of a comparison.
func RenderComparison(w io.Writer, cmp *types.ComparisonResult) {
	line := "============================================================"
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "PRIVACY COMPARISON")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Local system score:  %d/100\n", cmp.LocalSystem.PrivacyLabel.PrivacyScore)
	fmt.Fprintf(w, "Cloud system score:  %d/100\n", cmp.CloudSystem.PrivacyLabel.PrivacyScore)

	fmt.Fprintln(w, "\nKey differences (local vs cloud):")
	fmt.Fprintf(w, "  External domains: %d vs %d\n",
		cmp.KeyDifferences.ExternalDomains.Local, cmp.KeyDifferences.ExternalDomains.Cloud)
	fmt.Fprintf(w, "  Query exposure:   %d vs %d\n",
		cmp.KeyDifferences.QueryExposure.Local, cmp.KeyDifferences.QueryExposure.Cloud)
	fmt.Fprintf(w, "  Privacy score:    %d vs %d\n",
		cmp.KeyDifferences.PrivacyScore.Local, cmp.KeyDifferences.PrivacyScore.Cloud)
}
