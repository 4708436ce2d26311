package pipeline

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishabhK9/cloudist/internal/model"
	"github.com/RishabhK9/cloudist/internal/workspace"
)

// fakeTool writes a shell script that mimics the provisioning binary's
// subcommand behavior, giving the deployer a real subprocess to drive.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-tool")
	full := "#!/bin/sh\n" + script + "\n"
	require.NoError(t, os.WriteFile(path, []byte(full), 0o755))
	return path
}

func newTestDeployer(t *testing.T, script string) *Deployer {
	t.Helper()
	ws, err := workspace.NewManager(filepath.Join(t.TempDir(), "deployments"))
	require.NoError(t, err)
	return NewDeployer(ws, fakeTool(t, script))
}

func testArtifact() *model.GeneratedArtifact {
	return &model.GeneratedArtifact{
		Provider:       "aws",
		SerializedText: `resource "aws_s3_bucket" "media" {}` + "\n",
	}
}

const happyScript = `case "$1" in
  init) echo "Initialized the backend" ;;
  validate) echo "Success! The configuration is valid." ;;
  plan) echo "Plan: 2 to add, 0 to change, 0 to destroy."; printf "binary-plan" > tfplan ;;
  apply) echo "Apply complete! Resources: 2 added." ;;
esac
exit 0`

func TestDeploy(t *testing.T) {
	d := newTestDeployer(t, happyScript)

	report, err := d.Deploy(context.Background(), testArtifact(), map[string]string{"AWS_DEFAULT_REGION": "us-east-1"})
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.True(t, report.Init.Success)
	assert.True(t, report.Plan.Success)
	assert.True(t, report.Apply.Success)
	assert.Equal(t, 2, report.Summary.ToAdd)
	assert.Equal(t, 2, report.Summary.TotalChanges)
	assert.Contains(t, report.Apply.Stdout, "Apply complete")
}

func TestDeploySkipsApplyWhenNoChanges(t *testing.T) {
	d := newTestDeployer(t, `case "$1" in
  plan) echo "Plan: 0 to add, 0 to change, 0 to destroy."; : > tfplan ;;
  *) echo ok ;;
esac
exit 0`)

	report, err := d.Deploy(context.Background(), testArtifact(), nil)
	require.NoError(t, err)

	assert.False(t, report.Summary.HasChanges())
	assert.Empty(t, report.Apply.Stdout)
	assert.False(t, report.Apply.Success)
}

func TestDeployStopsOnInitFailure(t *testing.T) {
	d := newTestDeployer(t, `if [ "$1" = "init" ]; then echo "backend error" >&2; exit 1; fi
echo ok; exit 0`)

	report, err := d.Deploy(context.Background(), testArtifact(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init failed")
	require.NotNil(t, report)
	assert.False(t, report.Init.Success)
	assert.Empty(t, report.Plan.Stdout)
}

func TestDeployStopsOnPlanFailure(t *testing.T) {
	d := newTestDeployer(t, `if [ "$1" = "plan" ]; then echo "Error: invalid configuration" >&2; exit 1; fi
echo ok; exit 0`)

	_, err := d.Deploy(context.Background(), testArtifact(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan failed")
}

func TestPreview(t *testing.T) {
	d := newTestDeployer(t, happyScript)

	summary, encoded, err := d.Preview(context.Background(), testArtifact(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ToAdd)
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, "binary-plan", string(raw))
}

func TestCheck(t *testing.T) {
	d := newTestDeployer(t, happyScript)
	require.NoError(t, d.Check(context.Background(), testArtifact(), nil))
}

func TestCheckFailsOnInvalidConfiguration(t *testing.T) {
	d := newTestDeployer(t, `if [ "$1" = "validate" ]; then echo "Error: unsupported argument" >&2; exit 1; fi
echo ok; exit 0`)

	err := d.Check(context.Background(), testArtifact(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate failed")
	assert.Contains(t, err.Error(), "unsupported argument")
}

func TestValidateRefusesEmptyDir(t *testing.T) {
	ws, err := workspace.NewManager(filepath.Join(t.TempDir(), "deployments"))
	require.NoError(t, err)
	d := NewDeployer(ws, fakeTool(t, "echo ok; exit 0"))

	dir, cleanup, err := ws.CreateRunDir()
	require.NoError(t, err)
	defer cleanup()

	_, err = d.Validate(context.Background(), dir, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no artifact files")
}

func TestDeployerEnvReachesTool(t *testing.T) {
	d := newTestDeployer(t, `case "$1" in
  plan) echo "Plan: 0 to add, 0 to change, 0 to destroy."; printf "%s" "$CLOUDIST_MARKER"; : > tfplan ;;
  *) echo ok ;;
esac
exit 0`)

	report, err := d.Deploy(context.Background(), testArtifact(), map[string]string{"CLOUDIST_MARKER": "env-ok"})
	require.NoError(t, err)
	assert.Contains(t, report.Plan.Stdout, "env-ok")
}
