package main

import (
	"bytes"
	"testing"

	"github.com/Sachithra-228/evidencedeck/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGrade(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	cmd := newGradeCommand(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGradeCommand_ListsChangesWithoutWriting(t *testing.T) {
	a, path := writeFixture(t)

	out, err := runGrade(t, a)
	require.NoError(t, err)
	assert.Contains(t, out, "0 of 3 case(s) changed")

	cases, err := dataset.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pass", cases[0].Status)
}

func TestGradeCommand_Write(t *testing.T) {
	a, path := writeFixture(t)
	cases, err := dataset.Load(path)
	require.NoError(t, err)
	cases[0].Status = "fail"
	cases[1].Status = ""
	require.NoError(t, dataset.Save(path, cases))

	out, err := runGrade(t, a, "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "TC01: fail -> pass")
	assert.Contains(t, out, "TC02: (none) -> fail")
	assert.Contains(t, out, "2 of 3 case(s) changed")
	assert.Contains(t, out, "Updated ")

	cases, err = dataset.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pass", cases[0].Status)
	assert.Equal(t, "fail", cases[1].Status)
	assert.Equal(t, "skipped", cases[2].Status)
}

func TestGradeCommand_MissingFile(t *testing.T) {
	a, _ := writeFixture(t)
	_, err := runGrade(t, a, "missing.json")
	assert.Error(t, err)
}
