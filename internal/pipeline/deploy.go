package pipeline

import (
	"context"
	"fmt"

	"github.com/RishabhK9/cloudist/internal/ctxlog"
	"github.com/RishabhK9/cloudist/internal/executor"
	"github.com/RishabhK9/cloudist/internal/model"
	"github.com/RishabhK9/cloudist/internal/planparse"
	"github.com/RishabhK9/cloudist/internal/workspace"
)

// Deployer wraps the provisioning tool's subcommands. Working directories
// always come from the workspace manager, so every execution stays behind
// the same sandbox guard.
type Deployer struct {
	ws   *workspace.Manager
	exec *executor.Executor
}

// NewDeployer builds a deployer for the given tool binary, sandboxed to the
// manager's root.
func NewDeployer(ws *workspace.Manager, binary string) *Deployer {
	return &Deployer{
		ws:   ws,
		exec: executor.New(binary, ws.Guard()),
	}
}

// Init runs `init` with upgrade checks and backend initialization skipped:
// generated artifacts carry no backend and pinning happens at generation
// time.
func (d *Deployer) Init(ctx context.Context, dir string, env map[string]string) (model.ExecutionResult, error) {
	return d.run(ctx, dir, env, "init", "-input=false", "-upgrade=false", "-backend=false")
}

// Validate runs `validate`. It refuses to run in a directory with no
// artifact files, which would vacuously succeed.
func (d *Deployer) Validate(ctx context.Context, dir string, env map[string]string) (model.ExecutionResult, error) {
	files, err := d.ws.ArtifactFiles(dir)
	if err != nil {
		return model.ExecutionResult{}, err
	}
	if len(files) == 0 {
		return model.ExecutionResult{}, fmt.Errorf("no artifact files in %s", dir)
	}
	return d.run(ctx, dir, env, "validate", "-no-color")
}

// Plan runs `plan`, optionally saving the binary plan file, and interprets
// the captured output into a summary.
func (d *Deployer) Plan(ctx context.Context, dir string, env map[string]string, savePlan bool) (model.PlanSummary, model.ExecutionResult, error) {
	args := []string{"-input=false", "-no-color"}
	if savePlan {
		args = append(args, "-out="+workspace.PlanFileName)
	}
	result, err := d.run(ctx, dir, env, "plan", args...)
	if err != nil {
		return model.PlanSummary{}, result, err
	}
	return planparse.Interpret(result.Stdout), result, nil
}

// Apply runs `apply`. With usePlanFile it applies the previously saved plan
// file; otherwise it auto-approves a fresh plan.
func (d *Deployer) Apply(ctx context.Context, dir string, env map[string]string, usePlanFile bool) (model.ExecutionResult, error) {
	args := []string{"-input=false", "-no-color"}
	if usePlanFile {
		args = append(args, workspace.PlanFileName)
	} else {
		args = append(args, "-auto-approve")
	}
	return d.run(ctx, dir, env, "apply", args...)
}

func (d *Deployer) run(ctx context.Context, dir string, env map[string]string, command string, args ...string) (model.ExecutionResult, error) {
	result, err := d.exec.Run(ctx, model.ExecutionRequest{
		Command:          command,
		Args:             args,
		WorkingDirectory: dir,
		EnvOverlay:       env,
	})
	if err != nil {
		return result, err
	}
	if !result.Success && executor.IsToolNotInstalled(result) {
		ctxlog.FromContext(ctx).Error("Provisioning tool is not installed or not executable.", "command", command)
	}
	return result, nil
}

// Report is the outcome of a full Deploy.
type Report struct {
	Summary model.PlanSummary
	Init    model.ExecutionResult
	Plan    model.ExecutionResult
	Apply   model.ExecutionResult
}

// Deploy provisions an artifact end to end in a fresh ephemeral run
// directory: write, init, validate, plan (saved), apply (from the saved
// plan). The run directory is removed on every exit path.
func (d *Deployer) Deploy(ctx context.Context, artifact *model.GeneratedArtifact, env map[string]string) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	dir, cleanup, err := d.ws.CreateRunDir()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if _, err := d.ws.WriteArtifact(dir, artifact.SerializedText); err != nil {
		return nil, err
	}

	report := &Report{}

	if report.Init, err = d.Init(ctx, dir, env); err != nil {
		return nil, err
	}
	if !report.Init.Success {
		return report, fmt.Errorf("init failed: %s", failureDetail(report.Init))
	}

	validate, err := d.Validate(ctx, dir, env)
	if err != nil {
		return nil, err
	}
	if !validate.Success {
		return report, fmt.Errorf("validate failed: %s", failureDetail(validate))
	}

	if report.Summary, report.Plan, err = d.Plan(ctx, dir, env, true); err != nil {
		return nil, err
	}
	if !report.Plan.Success {
		return report, fmt.Errorf("plan failed: %s", failureDetail(report.Plan))
	}
	logger.Info("Plan complete.",
		"toAdd", report.Summary.ToAdd,
		"toChange", report.Summary.ToChange,
		"toDestroy", report.Summary.ToDestroy,
	)
	if !report.Summary.HasChanges() {
		logger.Info("No changes to apply.")
		return report, nil
	}

	if report.Apply, err = d.Apply(ctx, dir, env, true); err != nil {
		return nil, err
	}
	if !report.Apply.Success {
		return report, fmt.Errorf("apply failed: %s", failureDetail(report.Apply))
	}

	logger.Info("Deploy complete.")
	return report, nil
}

// Check writes the artifact to a fresh run directory and runs init plus
// validate, without planning. The run directory is removed before returning.
func (d *Deployer) Check(ctx context.Context, artifact *model.GeneratedArtifact, env map[string]string) error {
	dir, cleanup, err := d.ws.CreateRunDir()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := d.ws.WriteArtifact(dir, artifact.SerializedText); err != nil {
		return err
	}

	initRes, err := d.Init(ctx, dir, env)
	if err != nil {
		return err
	}
	if !initRes.Success {
		return fmt.Errorf("init failed: %s", failureDetail(initRes))
	}

	validateRes, err := d.Validate(ctx, dir, env)
	if err != nil {
		return err
	}
	if !validateRes.Success {
		return fmt.Errorf("validate failed: %s", failureDetail(validateRes))
	}
	return nil
}

// Preview writes the artifact to a fresh run directory, runs init and a
// saving plan, and returns the summary plus the base64-encoded plan file
// for transport. The run directory is removed before returning.
func (d *Deployer) Preview(ctx context.Context, artifact *model.GeneratedArtifact, env map[string]string) (model.PlanSummary, string, error) {
	dir, cleanup, err := d.ws.CreateRunDir()
	if err != nil {
		return model.PlanSummary{}, "", err
	}
	defer cleanup()

	if _, err := d.ws.WriteArtifact(dir, artifact.SerializedText); err != nil {
		return model.PlanSummary{}, "", err
	}

	initRes, err := d.Init(ctx, dir, env)
	if err != nil {
		return model.PlanSummary{}, "", err
	}
	if !initRes.Success {
		return model.PlanSummary{}, "", fmt.Errorf("init failed: %s", failureDetail(initRes))
	}

	summary, planRes, err := d.Plan(ctx, dir, env, true)
	if err != nil {
		return model.PlanSummary{}, "", err
	}
	if !planRes.Success {
		return summary, "", fmt.Errorf("plan failed: %s", failureDetail(planRes))
	}

	encoded, err := d.ws.ReadPlanFile(dir)
	if err != nil {
		return summary, "", err
	}
	return summary, encoded, nil
}

// failureDetail picks the most useful failure text from a result: the
// executor's message first, then whatever the tool wrote to stderr.
func failureDetail(result model.ExecutionResult) string {
	if result.ErrorMessage != "" {
		return result.ErrorMessage
	}
	if result.Stderr != "" {
		return result.Stderr
	}
	return fmt.Sprintf("exit code %d", result.ExitCode)
}
