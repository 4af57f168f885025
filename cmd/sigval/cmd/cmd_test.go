package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigval/internal/domain"
)

var fixture = filepath.Join("..", "..", "..", "internal", "infra", "codec", "testdata", "diagnostic.json")

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestValidate_PrintsReport(t *testing.T) {
	stdout, stderr, err := execute(t, "validate", "--in", fixture, "--time", "2025-06-01T12:00:00Z")
	require.ErrorIs(t, err, errNotValid)

	var rec domain.ValidationRecord
	require.NoError(t, json.Unmarshal([]byte(stdout), &rec))
	require.NotNil(t, rec.Report)
	assert.Equal(t, domain.IndicationInvalid, rec.Report.Global.Indication)
	assert.Nil(t, rec.Trace)

	assert.True(t, strings.HasPrefix(stderr, "indication=INVALID"))
	assert.Contains(t, stderr, "signature=S-1 indication=VALID")
	assert.Contains(t, stderr, "signature=S-2 indication=INVALID sub_indication=HASH_FAILURE")
}

func TestValidate_WritesFileWithTrace(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	_, _, err := execute(t, "validate", "--in", fixture, "--time", "2025-06-01T12:00:00Z", "--out", out, "--detail", "--parallel")
	require.ErrorIs(t, err, errNotValid)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var rec domain.ValidationRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	require.NotNil(t, rec.Trace)
	assert.Equal(t, "ValidationData", rec.Trace.Name)
}

func TestValidate_Errors(t *testing.T) {
	_, _, err := execute(t, "validate")
	require.Error(t, err)

	_, _, err = execute(t, "validate", "--in", fixture, "--time", "yesterday")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errNotValid)

	_, _, err = execute(t, "validate", "--in", fixture, "--policy", "missing")
	require.ErrorIs(t, err, domain.ErrPolicyNotFound)

	_, _, err = execute(t, "validate", "--in", filepath.Join(t.TempDir(), "none.json"))
	require.Error(t, err)
}

func TestPolicies(t *testing.T) {
	stdout, _, err := execute(t, "policies")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "default"))
}
