package engine

import (
	"context"
	"testing"

	"github.com/crank-build/crank/internal/dag"
	"github.com/crank-build/crank/internal/executor"
	"github.com/crank-build/crank/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls   []string
	results map[string]executor.CommandResult
}

func (f *fakeRunner) Run(_ context.Context, cmd task.Command) (executor.CommandResult, error) {
	f.calls = append(f.calls, cmd.String())
	if res, ok := f.results[cmd.String()]; ok {
		return res, nil
	}
	return executor.CommandResult{ExitStatus: 0, Completed: true}, nil
}

func pipelineRegistry(t *testing.T) *task.Registry {
	t.Helper()
	reg := task.NewRegistry()
	leaf := func(name string) *task.Target {
		return &task.Target{Name: name, Commands: []task.Command{{Exec: "tool", Args: []string{name}}}}
	}
	for _, tgt := range []*task.Target{
		leaf("format"),
		leaf("lint"),
		leaf("type-check"),
		leaf("security"),
		leaf("test"),
		{Name: "ci-check", Deps: []string{"format", "lint", "type-check", "security", "test"}},
	} {
		require.NoError(t, reg.Register(tgt))
	}
	return reg
}

func TestEngine_PlanBuiltinCiCheck(t *testing.T) {
	eng := New(Config{Registry: task.Builtin()})

	plan, err := eng.Plan("ci-check")
	require.NoError(t, err)
	assert.Equal(t, []string{"format", "lint", "type-check", "security", "test", "ci-check"}, plan)
}

func TestEngine_RunFullPipeline(t *testing.T) {
	runner := &fakeRunner{}
	eng := New(Config{Registry: pipelineRegistry(t), Runner: runner})

	res, err := eng.Run(context.Background(), "ci-check")
	require.NoError(t, err)
	require.Equal(t, executor.StatusSucceeded, res.Status)
	assert.Equal(t, []string{
		"tool format", "tool lint", "tool type-check", "tool security", "tool test",
	}, runner.calls)
	assert.Len(t, res.Targets, 6)
}

func TestEngine_RunFailFast(t *testing.T) {
	runner := &fakeRunner{
		results: map[string]executor.CommandResult{
			"tool lint": {ExitStatus: 1, Completed: true},
		},
	}
	eng := New(Config{Registry: pipelineRegistry(t), Runner: runner})

	res, err := eng.Run(context.Background(), "ci-check")
	require.Error(t, err)
	require.Equal(t, executor.StatusFailed, res.Status)

	var cmdErr *executor.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "lint", cmdErr.Target)
	assert.Equal(t, 1, cmdErr.ExitStatus)

	// format ran fully, lint's command ran, then nothing.
	assert.Equal(t, []string{"tool format", "tool lint"}, runner.calls)
}

func TestEngine_CycleRunsNothing(t *testing.T) {
	reg := task.NewRegistry()
	require.NoError(t, reg.Register(&task.Target{Name: "a", Deps: []string{"b"}, Commands: []task.Command{{Exec: "tool"}}}))
	require.NoError(t, reg.Register(&task.Target{Name: "b", Deps: []string{"a"}, Commands: []task.Command{{Exec: "tool"}}}))

	runner := &fakeRunner{}
	eng := New(Config{Registry: reg, Runner: runner})

	res, err := eng.Run(context.Background(), "a")
	assert.Nil(t, res)

	var cycleErr *dag.CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Empty(t, runner.calls, "no command may run when resolution fails")
}

func TestEngine_UnknownRunsNothing(t *testing.T) {
	runner := &fakeRunner{}
	eng := New(Config{Registry: pipelineRegistry(t), Runner: runner})

	_, err := eng.Run(context.Background(), "bogus")

	var unknown *task.UnknownTargetError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bogus", unknown.Name)
	assert.Empty(t, runner.calls)
}
