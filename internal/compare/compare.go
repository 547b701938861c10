// Package compare runs the analyzer and label pipeline over two
// traffic logs and produces a structured diff.
package compare

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/privlabel/internal/analyzer"
	"github.com/usestring/privlabel/internal/label"
	"github.com/usestring/privlabel/internal/store"
	"github.com/usestring/privlabel/pkg/types"
)

// Stores compares two already-loaded stores. The first store is
// labeled "local" and the second "cloud"; the metrics themselves are
// computed identically for both sides, with no shared state. The
// result is deterministic for fixed inputs and at.
func Stores(local, cloud *store.Store, cfg analyzer.Config, at time.Time) *types.ComparisonResult {
	localReport := analyze(local, cfg)
	cloudReport := analyze(cloud, cfg)
	return assemble(localReport, cloudReport, at)
}

// Files loads both logs through loader and compares them, analyzing
// the two sides concurrently.
func Files(localPath, cloudPath string, loader *store.CachingLoader, cfg analyzer.Config, at time.Time) (*types.ComparisonResult, error) {
	var localReport, cloudReport types.SystemReport

	var g errgroup.Group
	g.Go(func() error {
		st, err := loader.Load(localPath)
		if err != nil {
			return err
		}
		localReport = analyze(st, cfg)
		return nil
	})
	g.Go(func() error {
		st, err := loader.Load(cloudPath)
		if err != nil {
			return err
		}
		cloudReport = analyze(st, cfg)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return assemble(localReport, cloudReport, at), nil
}

func analyze(st *store.Store, cfg analyzer.Config) types.SystemReport {
	analysis := analyzer.New(st, cfg).Analyze()
	return types.SystemReport{
		Analysis:     analysis,
		PrivacyLabel: label.Generate(analysis),
	}
}

func assemble(local, cloud types.SystemReport, at time.Time) *types.ComparisonResult {
	return &types.ComparisonResult{
		ComparisonDate: at,
		LocalSystem:    local,
		CloudSystem:    cloud,
		KeyDifferences: types.KeyDifferences{
			ExternalDomains: metric(
				len(local.Analysis.ExternalDomains),
				len(cloud.Analysis.ExternalDomains),
			),
			QueryExposure: metric(
				len(local.Analysis.QueryDataLeaked),
				len(cloud.Analysis.QueryDataLeaked),
			),
			PrivacyScore: metric(
				local.PrivacyLabel.PrivacyScore,
				cloud.PrivacyLabel.PrivacyScore,
			),
		},
	}
}

func metric(local, cloud int) types.SideMetric {
	return types.SideMetric{Local: local, Cloud: cloud, Delta: local - cloud}
}
