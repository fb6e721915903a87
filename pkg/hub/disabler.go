package hub

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hubapi/internal/constants"
)

// RunStats accumulates the outcome of one copyright disabling run.
type RunStats struct {
	// Components is the number of BoM entries visited
	Components int
	// Origins is the number of origins visited
	Origins int
	// Copyrights is the number of copyright records examined
	Copyrights int
	// Updated is the number of records written to inactive
	Updated int
	// Skipped is the number of records left alone, either already inactive
	// or covered by the single-copyright policy
	Skipped int
	// Errors is the number of failed record writes
	Errors int
	// ValidationFailures is the number of records still active after the
	// retry budget was exhausted
	ValidationFailures int
	// Failures holds the hrefs of records whose write failed
	Failures []string
}

// Summary renders the stats as a multi-line report.
func (s *RunStats) Summary() string {
	out := fmt.Sprintf(
		"components: %d\norigins: %d\ncopyrights: %d\nupdated: %d\nskipped: %d\nerrors: %d\nvalidation failures: %d",
		s.Components, s.Origins, s.Copyrights, s.Updated, s.Skipped, s.Errors, s.ValidationFailures,
	)

	for _, href := range s.Failures {
		out += "\nfailed: " + href
	}

	return out
}

// DisableOptions configures a copyright disabling run.
type DisableOptions struct {
	// OnlyDisableMultiple leaves origins with exactly one copyright record
	// untouched
	OnlyDisableMultiple bool
}

// CopyrightDisabler drives every copyright record of a project version's BoM
// to inactive and verifies each write took effect. Verification failures are
// retried with a full re-fetch of the origin's records, bounded at
// constants.CopyrightVerifyRetries retries per origin after the initial pass.
// Processing is sequential; only the initial BoM fetch is fatal to a run.
type CopyrightDisabler struct {
	client  Client
	logger  Logger
	options DisableOptions
}

// NewCopyrightDisabler creates a disabler. A nil logger discards output.
func NewCopyrightDisabler(client Client, logger Logger, options DisableOptions) *CopyrightDisabler {
	if logger == nil {
		logger = noopLogger{}
	}

	return &CopyrightDisabler{
		client:  client,
		logger:  logger,
		options: options,
	}
}

// Run processes every BoM entry of the project version at versionHref and
// returns the aggregate stats. The returned error is non-nil only when the
// initial BoM listing fails; every later failure is counted and logged.
func (d *CopyrightDisabler) Run(ctx context.Context, versionHref string) (*RunStats, error) {
	stats := &RunStats{}

	params := NewQueryParams().
		WithSort("projectName ASC").
		WithFilter("bomInclusion", "false").
		WithFilter("bomMatchInclusion", "false").
		WithLimit(constants.DefaultPageLimit)

	for offset := 0; ; {
		params.Offset = offset

		page, err := d.client.ProjectVersions().ListBomComponents(ctx, versionHref, params)
		if err != nil {
			if offset == 0 {
				return nil, fmt.Errorf("listing BoM components for %s: %w", versionHref, err)
			}

			d.logger.Error("Failed to fetch BoM page", map[string]interface{}{
				"version": versionHref,
				"offset":  offset,
				"error":   err.Error(),
			})

			break
		}

		for i := range page.Items {
			d.processComponent(ctx, stats, &page.Items[i])
		}

		offset += len(page.Items)
		if len(page.Items) == 0 || offset >= page.TotalCount {
			break
		}
	}

	d.logger.Info("Copyright disabling run finished", map[string]interface{}{
		"components":          stats.Components,
		"origins":             stats.Origins,
		"copyrights":          stats.Copyrights,
		"updated":             stats.Updated,
		"skipped":             stats.Skipped,
		"errors":              stats.Errors,
		"validation_failures": stats.ValidationFailures,
	})

	return stats, nil
}

// processComponent resolves the component's origins and processes each one.
func (d *CopyrightDisabler) processComponent(ctx context.Context, stats *RunStats, component *BomComponent) {
	stats.Components++

	d.logger.Info("Processing component", map[string]interface{}{
		"component": component.ComponentName,
		"version":   component.ComponentVersionName,
	})

	if len(component.Origins) == 0 {
		// No embedded origins means every origin of the component applies.
		origins, err := d.client.Components().ListOrigins(ctx, component)
		if err != nil {
			d.logger.Error("Failed to fetch origins", map[string]interface{}{
				"component": component.ComponentName,
				"error":     err.Error(),
			})

			return
		}

		for i := range origins {
			origin := &origins[i]
			if origin.Meta == nil || origin.Meta.Href == "" {
				d.logger.Error("Origin has no href", map[string]interface{}{
					"component": component.ComponentName,
					"origin":    origin.OriginName,
				})

				continue
			}

			stats.Origins++
			d.disableOriginCopyrights(ctx, stats, component.ComponentName, origin.OriginName, origin.Meta.Href)
		}

		return
	}

	for i := range component.Origins {
		origin := &component.Origins[i]

		href, ok := origin.Href()
		if !ok {
			d.logger.Error("Unable to determine origin URL", map[string]interface{}{
				"component": component.ComponentName,
				"origin":    origin.Name,
			})

			continue
		}

		stats.Origins++
		d.disableOriginCopyrights(ctx, stats, component.ComponentName, origin.Name, href)
	}
}

// disableOriginCopyrights runs the fetch-write-verify passes for one origin:
// the initial pass plus up to constants.CopyrightVerifyRetries retries.
func (d *CopyrightDisabler) disableOriginCopyrights(ctx context.Context, stats *RunStats, componentName, originName, originHref string) {
	for retries := 0; retries <= constants.CopyrightVerifyRetries; retries++ {
		records, err := d.client.Copyrights().ListForOrigin(ctx, originHref)
		if err != nil {
			d.logger.Error("Failed to fetch copyrights", map[string]interface{}{
				"component": componentName,
				"origin":    originName,
				"error":     err.Error(),
			})

			return
		}

		if len(records) == 0 {
			d.logger.Info("No copyrights", map[string]interface{}{
				"component": componentName,
				"origin":    originName,
			})

			return
		}

		if len(records) == 1 && d.options.OnlyDisableMultiple {
			// One-shot policy skip, counted only the first time around.
			if retries == 0 {
				stats.Copyrights++
				stats.Skipped++

				d.logger.Info("Single copyright, skipping per policy", map[string]interface{}{
					"component": componentName,
					"origin":    originName,
				})
			}

			return
		}

		anyChanged := d.disablePass(ctx, stats, componentName, originName, records)
		if !anyChanged {
			return
		}

		residual, done := d.verify(ctx, componentName, originName, originHref)
		if done {
			return
		}

		if retries == constants.CopyrightVerifyRetries {
			for _, href := range residual {
				stats.ValidationFailures++

				d.logger.Error("Copyright still active after retries", map[string]interface{}{
					"component": componentName,
					"origin":    originName,
					"copyright": href,
				})
			}

			return
		}

		d.logger.Warn("Verification failed, retrying", map[string]interface{}{
			"component": componentName,
			"origin":    originName,
			"retry":     retries + 1,
			"residual":  len(residual),
		})
	}
}

// disablePass writes active=false to every active record, tolerating
// per-record failures. Every pass counts the records it examines and skips,
// retry passes included.
func (d *CopyrightDisabler) disablePass(ctx context.Context, stats *RunStats, componentName, originName string, records []CopyrightRecord) bool {
	anyChanged := false

	for i := range records {
		record := &records[i]

		stats.Copyrights++

		if !record.Active {
			stats.Skipped++

			d.logger.Info("Copyright already inactive", map[string]interface{}{
				"component": componentName,
				"origin":    originName,
				"copyright": recordHref(record),
			})

			continue
		}

		record.Active = false

		err := d.client.Copyrights().Update(ctx, record)
		if err != nil {
			stats.Errors++
			stats.Failures = append(stats.Failures, recordHref(record))

			d.logger.Error("Failed to disable copyright", map[string]interface{}{
				"component": componentName,
				"origin":    originName,
				"copyright": recordHref(record),
				"error":     err.Error(),
			})

			continue
		}

		stats.Updated++
		anyChanged = true
	}

	return anyChanged
}

// verify re-fetches the origin's records and returns the hrefs still active.
// done is true when there is nothing left to retry: all records inactive, the
// fresh count satisfies the single-copyright policy, or the re-fetch itself
// failed. The policy gate is re-evaluated against the fresh count because a
// partial write failure or a concurrent change can alter cardinality between
// passes.
func (d *CopyrightDisabler) verify(ctx context.Context, componentName, originName, originHref string) (residual []string, done bool) {
	records, err := d.client.Copyrights().ListForOrigin(ctx, originHref)
	if err != nil {
		d.logger.Error("Failed to re-fetch copyrights for verification", map[string]interface{}{
			"component": componentName,
			"origin":    originName,
			"error":     err.Error(),
		})

		return nil, true
	}

	if len(records) == 1 && d.options.OnlyDisableMultiple {
		return nil, true
	}

	for i := range records {
		if records[i].Active {
			residual = append(residual, recordHref(&records[i]))
		}
	}

	return residual, len(residual) == 0
}

func recordHref(record *CopyrightRecord) string {
	if record.Meta != nil {
		return record.Meta.Href
	}

	return ""
}

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}
