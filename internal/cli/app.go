package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/clipscrub/clipscrub/internal/config"
	"github.com/clipscrub/clipscrub/internal/detect"
	"github.com/clipscrub/clipscrub/internal/feature"
	"github.com/clipscrub/clipscrub/internal/license"
	"github.com/clipscrub/clipscrub/internal/logger"
	"github.com/clipscrub/clipscrub/internal/redact"
	"go.uber.org/zap"
)

// app carries the process-wide state built once at startup. The feature set
// and verification outcome are immutable after construction.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	verify   license.Verification
	features feature.Set
	engine   *redact.Engine
}

// licenseError is a paid-feature refusal carrying the verification outcome
// for the error message.
type licenseError struct {
	what   string
	verify license.Verification
}

func (e *licenseError) Error() string {
	return fmt.Sprintf("%s is a paid feature (%s)", e.what, licenseReason(e.verify))
}

// startup is the resolved boot state: the effective configuration and what
// the license allows.
type startup struct {
	cfg      *config.Config
	verify   license.Verification
	features feature.Set
}

// resolveStartup decides the effective configuration for this run. Config
// files are an entitlement: without ConfigRules, search-path discovery is
// skipped entirely so a stray config.yaml cannot customize rules, and an
// explicit --config is refused. An explicit config file is read before the
// entitlement check because it may name license.path; the license found
// there can unlock the very file that names it.
func resolveStartup(configPath string, check func(string, time.Time) license.Verification, now time.Time) (*startup, error) {
	verify := check("", now)
	features := feature.FromVerification(verify)

	if configPath == "" {
		if !features.Has(feature.ConfigRules) {
			return &startup{cfg: config.GetDefaults(), verify: verify, features: features}, nil
		}
		cfg, err := config.Load("")
		if err != nil {
			return nil, err
		}
		return &startup{cfg: cfg, verify: verify, features: features}, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.License.Path != "" {
		verify = check(cfg.License.Path, now)
		features = feature.FromVerification(verify)
	}
	if !features.Has(feature.ConfigRules) {
		return nil, &licenseError{what: "--config", verify: verify}
	}
	return &startup{cfg: cfg, verify: verify, features: features}, nil
}

// newApp loads configuration, verifies the license, and wires the redaction
// engine. Paid flags are checked against the feature set here; a failed check
// reports the license reason and exits with ExitLicenseError. License
// problems never block free-tier operation.
func newApp() (*app, bool) {
	boot, err := resolveStartup(flagConfig, license.Check, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipscrub error: %v\n", err)
		var le *licenseError
		if errors.As(err, &le) {
			exitCode = ExitLicenseError
		} else {
			exitCode = ExitInputError
		}
		return nil, false
	}
	cfg, verify, features := boot.cfg, boot.verify, boot.features

	if flagStable {
		cfg.Redaction.StablePlaceholders = true
	}
	if flagFormat != "" {
		cfg.Report.Format = flagFormat
	}

	if cfg.Redaction.StablePlaceholders && !features.Has(feature.StablePlaceholders) {
		return failLicense("--stable", verify)
	}
	if cfg.Report.Format != "text" && !features.Has(feature.StructuredReport) {
		return failLicense("--format "+cfg.Report.Format, verify)
	}
	if (flagStdin || flagFile != "") && !features.Has(feature.FileInput) {
		return failLicense("--stdin/--file", verify)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File: &logger.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipscrub error: failed to initialize logger: %v\n", err)
		exitCode = ExitInputError
		return nil, false
	}

	switch verify.Status {
	case license.StatusValid:
		log.Info("License verified",
			zap.String("email", verify.Info.Email),
			zap.String("plan", verify.Info.Plan),
		)
	case license.StatusDevOverride:
		log.Warn("Development license override active")
	case license.StatusInvalid:
		log.Warn("License invalid, running in free mode",
			zap.String("reason", verify.Reason.String()),
			zap.String("detail", verify.Detail),
		)
	}

	detector, err := detect.New(cfg.Redaction, log.WithComponent("detect"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipscrub error: %v\n", err)
		exitCode = ExitInputError
		return nil, false
	}

	return &app{
		cfg:      cfg,
		log:      log,
		verify:   verify,
		features: features,
		engine:   redact.NewEngine(detector, log.WithComponent("redact")),
	}, true
}

func (a *app) redactOptions() redact.Options {
	return redact.Options{StablePlaceholders: a.cfg.Redaction.StablePlaceholders}
}

func failLicense(what string, verify license.Verification) (*app, bool) {
	fmt.Fprintf(os.Stderr, "clipscrub error: %s is a paid feature (%s)\n", what, licenseReason(verify))
	exitCode = ExitLicenseError
	return nil, false
}

func licenseReason(verify license.Verification) string {
	switch verify.Status {
	case license.StatusNoLicense:
		return "no license file found"
	case license.StatusInvalid:
		if verify.Detail != "" {
			return fmt.Sprintf("license %s: %s", verify.Reason, verify.Detail)
		}
		return fmt.Sprintf("license %s", verify.Reason)
	}
	return "license " + verify.Status.String()
}
