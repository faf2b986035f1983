package app

import (
	"context"
	"errors"
	"fmt"

	"go.pindown.dev/pindown/internal/core/domain"
	"go.trai.ch/zerr"
)

// VerifyOptions configuration for the Verify method.
type VerifyOptions struct {
	Options
}

// verifyReport is the machine-readable verification outcome.
type verifyReport struct {
	Path     string        `json:"path"`
	LockPath string        `json:"lock_path"`
	Fresh    bool          `json:"fresh"`
	Pins     int           `json:"pins"`
	Issues   []verifyIssue `json:"issues"`
}

type verifyIssue struct {
	Kind       string `json:"kind"`
	Package    string `json:"package"`
	Pinned     string `json:"pinned,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

// Verify checks the lockfile against the current manifest without
// touching the network: every declared package must be pinned and every
// pin must still satisfy the merged constraints. A stale manifest hash
// alone is only a warning, since constraint-preserving edits such as
// comment changes never invalidate the pins.
func (a *App) Verify(_ context.Context, opts VerifyOptions) error {
	s, err := a.settingsFor(opts.Options)
	if err != nil {
		return err
	}

	m, err := a.manifests.Load(s.ManifestPath)
	if err != nil {
		return err
	}

	lockPath := lockPathFor(s.ManifestPath)
	lock, err := a.locks.Read(lockPath)
	if err != nil {
		return err
	}

	hash, err := a.hasher.Hash(m)
	if err != nil {
		return err
	}
	fresh := hash == lock.ManifestHash

	issues := lock.Validate(m)
	report := verifyReport{
		Path:     s.ManifestPath,
		LockPath: lockPath,
		Fresh:    fresh,
		Pins:     len(lock.Pins),
		Issues:   make([]verifyIssue, 0, len(issues)),
	}

	var errs error
	for _, issue := range issues {
		switch issue.Kind {
		case domain.IssueMissingPin:
			report.Issues = append(report.Issues, verifyIssue{
				Kind:       "missing-pin",
				Package:    issue.Package.String(),
				Constraint: issue.Constraint,
			})
			errs = errors.Join(errs, zerr.With(domain.ErrLockIncomplete, "package", issue.Package.String()))
		case domain.IssueUnsatisfiedPin:
			report.Issues = append(report.Issues, verifyIssue{
				Kind:       "unsatisfied-pin",
				Package:    issue.Package.String(),
				Pinned:     issue.Pinned.String(),
				Constraint: issue.Constraint,
			})
			failure := zerr.With(domain.ErrLockUnsatisfied, "package", issue.Package.String())
			errs = errors.Join(errs, zerr.With(failure, "pinned", issue.Pinned.String()))
		case domain.IssueOrphanPin:
			// Stale but harmless; the pin is simply unused.
			report.Issues = append(report.Issues, verifyIssue{
				Kind:    "orphan-pin",
				Package: issue.Package.String(),
				Pinned:  issue.Pinned.String(),
			})
		}
	}

	if opts.JSON {
		if err := a.printJSON(report); err != nil {
			return err
		}
		return errs
	}

	for _, issue := range report.Issues {
		switch issue.Kind {
		case "missing-pin":
			fmt.Fprintf(a.stdout, "missing pin: %s (%s)\n", issue.Package, orAny(issue.Constraint))
		case "unsatisfied-pin":
			fmt.Fprintf(a.stdout, "unsatisfied pin: %s %s violates %s\n", issue.Package, issue.Pinned, orAny(issue.Constraint))
		case "orphan-pin":
			fmt.Fprintf(a.stdout, "orphan pin: %s %s is not in the manifest\n", issue.Package, issue.Pinned)
		}
	}

	if errs != nil {
		return errs
	}

	if !fresh {
		a.logger.Warn(fmt.Sprintf("%s changed since the lockfile was written; the pins still satisfy it", s.ManifestPath))
	}
	fmt.Fprintf(a.stdout, "ok: %d pins verified against %s\n", len(lock.Pins), s.ManifestPath)
	return nil
}

// orAny renders an empty constraint as the any-version marker.
func orAny(constraint string) string {
	if constraint == "" {
		return "*"
	}
	return constraint
}
