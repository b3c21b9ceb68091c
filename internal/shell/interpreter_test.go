package shell

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osushell/osushell/internal/xerr"
)

type stubRunner struct {
	ran        []string
	execArgs   []string
	execPolicy string
	execMT     bool
	execBG     bool
	quit       bool
}

func (s *stubRunner) Run(script string) error {
	s.ran = append(s.ran, script)
	return nil
}

func (s *stubRunner) Exec(progs []string, policy string, mt, bg bool) error {
	s.execArgs = progs
	s.execPolicy = policy
	s.execMT = mt
	s.execBG = bg
	return nil
}

func (s *stubRunner) Quit() error {
	s.quit = true
	return nil
}

func newTestInterpreter() (*Interpreter, *stubRunner, *bytes.Buffer) {
	var out bytes.Buffer
	runner := &stubRunner{}
	vars := NewVarStore(10)
	return New(vars, runner, &out), runner, &out
}

func TestDispatchSetAndPrint(t *testing.T) {
	i, _, out := newTestInterpreter()
	require.NoError(t, i.Dispatch([]string{"set", "x", "hello", "world"}))
	require.NoError(t, i.Dispatch([]string{"print", "x"}))
	assert.Equal(t, "hello world\n", out.String())
}

func TestDispatchPrintMissingVariable(t *testing.T) {
	i, _, out := newTestInterpreter()
	require.NoError(t, i.Dispatch([]string{"print", "missing"}))
	assert.Equal(t, "Variable does not exist\n", out.String())
}

func TestDispatchEchoLiteralAndVariable(t *testing.T) {
	i, _, out := newTestInterpreter()
	require.NoError(t, i.Dispatch([]string{"echo", "hi"}))
	assert.Equal(t, "hi\n", out.String())

	out.Reset()
	require.NoError(t, i.Dispatch([]string{"set", "name", "Ada"}))
	out.Reset()
	require.NoError(t, i.Dispatch([]string{"echo", "$name"}))
	assert.Equal(t, "Ada\n", out.String())
}

func TestDispatchUnknownCommand(t *testing.T) {
	i, _, _ := newTestInterpreter()
	err := i.Dispatch([]string{"bogus"})
	assert.ErrorIs(t, err, xerr.ErrUnknownCommand)
}

func TestDispatchTooManyTokens(t *testing.T) {
	i, _, _ := newTestInterpreter()
	err := i.Dispatch([]string{"a", "b", "c", "d", "e", "f", "g", "h"})
	assert.ErrorIs(t, err, xerr.ErrTooManyTokens)
}

func TestDispatchRunDelegatesToRunner(t *testing.T) {
	i, runner, _ := newTestInterpreter()
	require.NoError(t, i.Dispatch([]string{"run", "prog"}))
	assert.Equal(t, []string{"prog"}, runner.ran)
}

func TestExecFreeOrderArguments(t *testing.T) {
	i, runner, _ := newTestInterpreter()
	require.NoError(t, i.Dispatch([]string{"exec", "a", "MT", "b", "RR", "#"}))
	assert.Equal(t, []string{"a", "b"}, runner.execArgs)
	assert.Equal(t, "RR", runner.execPolicy)
	assert.True(t, runner.execMT)
	assert.True(t, runner.execBG)
}

func TestExecRejectsMissingPolicy(t *testing.T) {
	i, _, _ := newTestInterpreter()
	err := i.Dispatch([]string{"exec", "a", "b"})
	assert.ErrorIs(t, err, xerr.ErrBadCommand)
}

func TestExecRejectsDuplicatePolicy(t *testing.T) {
	i, _, _ := newTestInterpreter()
	err := i.Dispatch([]string{"exec", "a", "FCFS", "RR"})
	assert.ErrorIs(t, err, xerr.ErrBadCommand)
}

func TestExecRejectsTooManyPrograms(t *testing.T) {
	i, _, _ := newTestInterpreter()
	err := i.Dispatch([]string{"exec", "a", "b", "c", "d", "FCFS"})
	assert.ErrorIs(t, err, xerr.ErrBadCommand)
}

func TestQuitDelegatesToRunner(t *testing.T) {
	i, runner, _ := newTestInterpreter()
	require.NoError(t, i.Dispatch([]string{"quit"}))
	assert.True(t, runner.quit)
}

func TestExecuteChainsCommandsLeftToRight(t *testing.T) {
	i, _, out := newTestInterpreter()
	_, err := i.Execute("echo a; echo b; bogus")
	assert.Error(t, err)
	assert.Equal(t, "a\nb\nUnknown Command\n", out.String())
}
