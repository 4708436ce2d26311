package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canvasJSON = `{
	"provider": "aws",
	"nodes": [
		{"id": "n1", "serviceType": "s3", "name": "media"}
	],
	"edges": []
}`

func writeCanvas(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "canvas.json")
	require.NoError(t, os.WriteFile(path, []byte(canvasJSON), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	root.SetContext(context.Background())
	root.SetArgs(args)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.Execute()
	return out.String(), err
}

func TestGenerateToStdout(t *testing.T) {
	out, err := runCommand(t, "generate", writeCanvas(t))
	require.NoError(t, err)

	assert.Contains(t, out, `resource "aws_s3_bucket" "media"`)
	assert.Contains(t, out, "required_providers")
}

func TestGenerateToFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "main.tf")
	stdout, err := runCommand(t, "generate", writeCanvas(t), "-o", outFile)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `resource "aws_s3_bucket" "media"`)
}

func TestGenerateMissingFile(t *testing.T) {
	_, err := runCommand(t, "generate", filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading graph file")
}

func TestGenerateRequiresArgument(t *testing.T) {
	_, err := runCommand(t, "generate")
	require.Error(t, err)
}

func TestValidateRejectsMalformedCredentials(t *testing.T) {
	// Overlay checks run before any artifact generation or tool execution.
	_, err := runCommand(t, "validate", writeCanvas(t), "--project-ref", "Not-A-Ref")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project reference")

	_, err = runCommand(t, "plan", writeCanvas(t), "--access-key-id", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access key ID")
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "text", &buf)

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestNewLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger("info", "json", &buf).Info("hello", slog.String("k", "v"))

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}
