package appstager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"git.home.luguber.info/inful/appstager/config"
	"git.home.luguber.info/inful/appstager/internal/logfields"
)

// AppPublisher abstracts the publish step so the cache can be driven by
// alternative strategies (or test doubles) without changing its caching and
// copy semantics.
type AppPublisher interface {
	Publish(ctx context.Context, params DeploymentParameters, outputDir string) error
}

// waitDelay bounds how long a finished-or-killed publish may keep its pipes
// open before Wait gives up on them. Build tools fork helper processes that
// inherit stdout and can outlive the main invocation.
const waitDelay = 10 * time.Second

// Publisher invokes the external publish tool to produce deployable output.
// It performs no caching; PublishCache layers that on top.
type Publisher struct {
	settings *config.Settings
	log      *slog.Logger
}

// NewPublisher returns a publisher using the given settings; nil means defaults.
func NewPublisher(cfg *config.Settings) *Publisher {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Publisher{settings: cfg, log: slog.Default()}
}

// WithLogger replaces the logger used for tool output and lifecycle events.
func (p *Publisher) WithLogger(log *slog.Logger) *Publisher {
	if log != nil {
		p.log = log
	}
	return p
}

// Publish runs the publish tool for params, writing output into outputDir.
// It blocks until the tool exits or the configured timeout elapses. On
// timeout the child process may not have been reaped yet; callers must not
// assume it was.
func (p *Publisher) Publish(ctx context.Context, params DeploymentParameters, outputDir string) error {
	args, err := publishArgs(params, outputDir, runtime.GOOS)
	if err != nil {
		return err
	}

	tool := p.settings.Tool
	if _, lookErr := exec.LookPath(tool); lookErr != nil {
		return &PublishFailedError{Tool: tool, ExitCode: -1, Err: lookErr}
	}

	timeout := p.settings.PublishTimeoutDuration()
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, tool, args...)
	cmd.Dir = params.ApplicationPath
	cmd.Env = mergeEnv(os.Environ(), params.PublishEnvironment)
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	appType := NormalizeApplicationType(string(params.ApplicationType))
	if appType == "" {
		appType = ApplicationTypePortable
	}
	attrs := []any{
		logfields.Tool(tool),
		logfields.Path(params.ApplicationPath),
		logfields.Framework(strings.TrimSpace(params.TargetFramework)),
		logfields.Configuration(strings.TrimSpace(params.Configuration)),
		logfields.AppType(string(appType)),
		logfields.Target(outputDir),
	}
	if appType == ApplicationTypeStandalone {
		// publishArgs already validated this mapping.
		rid, _ := runtimeIdentifier(runtime.GOOS, params.RuntimeArchitecture)
		attrs = append(attrs, logfields.RuntimeID(rid))
	}
	p.log.Info("Publishing application", attrs...)
	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if out := stdout.String(); out != "" {
		p.log.Debug("publish stdout", slog.String("output", out))
	}
	if errOut := stderr.String(); errOut != "" {
		p.log.Warn("publish stderr", slog.String("error_output", errOut))
	}

	if runErr == nil {
		p.log.Info("Publish completed", logfields.Tool(tool), logfields.DurationMS(float64(elapsed.Milliseconds())))
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		// The caller's context ended the run: their cancellation or deadline,
		// not a publish timeout.
		return ctxErr
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		p.log.Error("Publish timed out", logfields.Tool(tool), logfields.Path(params.ApplicationPath))
		return fmt.Errorf("%w after %s", ErrPublishTimeout, timeout)
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	p.log.Error("Publish failed",
		logfields.Tool(tool),
		logfields.ExitCode(exitCode),
		logfields.DurationMS(float64(elapsed.Milliseconds())))
	return &PublishFailedError{
		Tool:     tool,
		ExitCode: exitCode,
		Output:   combinedOutput(stdout.String(), stderr.String()),
		Err:      runErr,
	}
}

// publishArgs assembles the publish tool argument list. goos is a parameter
// so the runtime identifier mapping is testable on any host.
func publishArgs(params DeploymentParameters, outputDir, goos string) ([]string, error) {
	framework := strings.TrimSpace(params.TargetFramework)
	if framework == "" {
		return nil, ErrMissingFramework
	}

	args := []string{"publish", "--output", outputDir, "--framework", framework}
	if c := strings.TrimSpace(params.Configuration); c != "" {
		args = append(args, "--configuration", c)
	}
	if !params.RestoreOnPublish {
		args = append(args, "--no-restore", "-p:VerifyMatchingImplicitPackageVersion=false")
	}

	if NormalizeApplicationType(string(params.ApplicationType)) == ApplicationTypeStandalone {
		rid, err := runtimeIdentifier(goos, params.RuntimeArchitecture)
		if err != nil {
			return nil, err
		}
		args = append(args, "--runtime", rid)
	} else {
		// Portable output runs on the shared runtime; suppress the native host.
		args = append(args, "-p:UseAppHost=false")
	}

	args = append(args, params.AdditionalPublishArgs...)
	return args, nil
}

// mergeEnv overlays overrides onto the inherited environment, replacing
// existing keys rather than appending duplicates.
func mergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}
	merged := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		if key, _, ok := strings.Cut(kv, "="); ok {
			if _, replaced := overrides[key]; replaced {
				continue
			}
		}
		merged = append(merged, kv)
	}
	for k, v := range overrides {
		merged = append(merged, k+"="+v)
	}
	return merged
}

func combinedOutput(stdout, stderr string) string {
	switch {
	case stderr == "":
		return stdout
	case stdout == "":
		return stderr
	default:
		return stdout + "\n" + stderr
	}
}
