package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/fitpulse-api/internal/nutrition"
)

// run parses args and runs the selected subcommand, returning its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("planner"))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	runCtx, err := cli.newRunContext(&out)
	if err != nil {
		return "", err
	}
	err = kctx.Run(runCtx)
	return out.String(), err
}

func TestTargetsCmd(t *testing.T) {
	out, err := run(t, "targets", "--age", "30", "--height", "180", "--weight", "80", "--goal", "maintain")
	require.NoError(t, err)

	var targets nutrition.MacroTargets
	require.NoError(t, json.Unmarshal([]byte(out), &targets))
	assert.Equal(t, 2759, targets.TargetCalories)
	assert.Equal(t, 128, targets.ProteinGrams)
}

func TestTargetsCmd_MissingFlag(t *testing.T) {
	_, err := run(t, "targets", "--age", "30", "--height", "180", "--goal", "lean")
	assert.Error(t, err)
}

func TestPlanCmd_SeedIsDeterministic(t *testing.T) {
	args := []string{"--seed", "11", "plan", "--age", "28", "--height", "165", "--weight", "60", "--gender", "female", "--goal", "lean"}
	first, err := run(t, args...)
	require.NoError(t, err)
	second, err := run(t, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var resp struct {
		Targets nutrition.MacroTargets `json:"targets"`
		Plan    nutrition.WeekPlan     `json:"plan"`
	}
	require.NoError(t, json.Unmarshal([]byte(first), &resp))
	assert.Len(t, resp.Plan.Days, 7)
	assert.Equal(t, nutrition.GoalLean, resp.Targets.Goal)
}

func TestMacrosCmd(t *testing.T) {
	out, err := run(t, "--seed", "3", "macros", "--protein", "150", "--carbs", "0", "--fat", "60")
	require.NoError(t, err)

	var plan nutrition.WeekPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	lunch := plan.Days[0].Meals[1]
	_, hasCarb := lunch.Food(nutrition.CategoryCarb)
	assert.False(t, hasCarb)

	_, err = run(t, "macros", "--protein=-1", "--carbs", "0", "--fat", "0")
	assert.Error(t, err)
}

func TestFoodsCmd(t *testing.T) {
	out, err := run(t, "foods", "fat")
	require.NoError(t, err)

	var foods map[string][]nutrition.Food
	require.NoError(t, json.Unmarshal([]byte(out), &foods))
	require.Len(t, foods, 1)
	assert.NotEmpty(t, foods["Fat"])

	_, err = run(t, "foods", "dessert")
	assert.Error(t, err)
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.toml")
	require.NoError(t, os.WriteFile(path, []byte("[bands.maintain]\nmin = 3000\nmax = 3000\n"), 0o600))

	out, err := run(t, "--config", path, "targets", "--age", "30", "--height", "180", "--weight", "80", "--goal", "maintain")
	require.NoError(t, err)
	var targets nutrition.MacroTargets
	require.NoError(t, json.Unmarshal([]byte(out), &targets))
	assert.Equal(t, 3000, targets.ClampedCalories)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[meals]\nsnack_share = 0.9\n"), 0o600))
	_, err = run(t, "--config", bad, "foods")
	assert.Error(t, err)
}
