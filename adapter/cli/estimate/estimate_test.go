package estimate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/adapter/cli/clitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel(t *testing.T) {
	clitest.NewApp(t)

	out, err := clitest.Run(modelCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Model: linear_regression")
}

func TestPredict(t *testing.T) {
	app := clitest.NewApp(t)

	pastScore, difficulty, chapters, daysLeft = 60, "hard", 8, 10
	out, err := clitest.Run(predictCmd)
	require.NoError(t, err)

	want, err := app.Estimator.PredictHours(60, "hard", 8, 10)
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended: "+cli.FormatHours(want))
}

func TestSampleData_RoundTrip(t *testing.T) {
	clitest.NewApp(t)

	path := filepath.Join(t.TempDir(), "training.csv")
	sampleOutput = path
	t.Cleanup(func() { sampleOutput = "" })
	_, err := clitest.Run(sampleDataCmd)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	dataFile = path
	t.Cleanup(func() { dataFile = "" })
	cli.SetJSONOutput(true)
	out, err := clitest.Run(predictCmd)
	require.NoError(t, err)
	assert.Contains(t, out, `"model": "linear_regression"`)
}
