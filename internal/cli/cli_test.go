package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataset = "Name;Depth;Salinity\nCaspian;1025;12.8\nMediterranean;1500;38.4\n\nBaltic;55;7\n"

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seas.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "seas", cmd.Use)

	for _, name := range []string{"report", "deepest", "least-salty", "average", "sort", "near-salinity"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	path := writeDataset(t, testDataset)
	_, _, err := execute(t, "deepest", path, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.False(t, IsReported(err))
}

func TestDeepestText(t *testing.T) {
	path := writeDataset(t, testDataset)
	out, _, err := execute(t, "deepest", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Mediterranean")
	assert.Contains(t, out, "Depth: 1500.00 m")
}

func TestLeastSaltyJSON(t *testing.T) {
	path := writeDataset(t, testDataset)
	out, _, err := execute(t, "least-salty", path, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Index int `json:"index"`
			Sea   struct {
				Name string `json:"name"`
			} `json:"sea"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Index)
	assert.Equal(t, "Baltic", resp.Data.Sea.Name)
}

func TestAverageAndSort(t *testing.T) {
	path := writeDataset(t, testDataset)

	out, _, err := execute(t, "average", path)
	require.NoError(t, err)
	assert.Equal(t, "Average depth: 860.00 m\n", out)

	out, _, err = execute(t, "sort", path, "--format", "json")
	require.NoError(t, err)
	var resp struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "Mediterranean", resp.Data[0].Name)
	assert.Equal(t, "Caspian", resp.Data[1].Name)
	assert.Equal(t, "Baltic", resp.Data[2].Name)
}

func TestReport(t *testing.T) {
	path := writeDataset(t, testDataset)
	out, _, err := execute(t, "report", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Caspian")
	assert.Contains(t, out, "Seas: 3")
	assert.Contains(t, out, "Deepest: Mediterranean (1500.00 m)")
	assert.Contains(t, out, "Least salty: Baltic (7.00 ppt)")
}

func TestNearSalinity(t *testing.T) {
	path := writeDataset(t, testDataset)

	out, _, err := execute(t, "near-salinity", path, "--target", "12.75")
	require.NoError(t, err)
	assert.Contains(t, out, "Caspian")
	assert.NotContains(t, out, "Baltic")

	out, _, err = execute(t, "near-salinity", path, "--target", "20", "--tolerance", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "No seas with salinity")

	_, _, err = execute(t, "near-salinity", path)
	require.Error(t, err)
}

func TestMissingDatasetExitCode(t *testing.T) {
	_, stderr, err := execute(t, "report", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "no sea records loaded")
	assert.True(t, IsReported(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))
}
