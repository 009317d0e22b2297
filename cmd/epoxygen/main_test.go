package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelSource = "package model\n\ntype Kind string\n\nconst (\n\tSmall Kind = \"SMALL\"\n\tLarge Kind = \"LARGE\"\n)\n\n" +
	"type Box struct {\n\tWidth int `epoxy:\"width\"`\n\tKind Kind `epoxy:\"kind,optional\"`\n}\n\n" +
	"type Crate struct {\n\tBox\n\tLabel string `epoxy:\"label\"`\n}\n"

func writePackage(t *testing.T, content string) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/model\n\ngo 1.22\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.go"), []byte(content), 0o644))
	return dir
}

func TestRun(t *testing.T) {
	var testCases = []struct {
		description string
		content     string
		args        []string
		expectFiles []string
		absent      []string
		expectErr   bool
		log         string
	}{
		{
			description: "default generation",
			content:     modelSource,
			expectFiles: []string{"box_epoxy.go", "crate_epoxy.go", "enums_epoxy.go"},
		},
		{
			description: "type filter and suffixes",
			content:     modelSource,
			args:        []string{"--types", "Box", "--file-suffix", "_json.go", "--suffix", "Codec"},
			expectFiles: []string{"box_json.go", "enums_json.go"},
			absent:      []string{"crate_json.go", "box_epoxy.go"},
		},
		{
			description: "dry run",
			content:     modelSource,
			args:        []string{"--dry-run"},
			absent:      []string{"box_epoxy.go", "enums_epoxy.go"},
			log:         "file=box_epoxy.go",
		},
		{
			description: "binding failure",
			content:     "package model\n\ntype Bad struct {\n\tData []byte `epoxy:\"data\"`\n}\n",
			absent:      []string{"bad_epoxy.go"},
			expectErr:   true,
			log:         "byte type byte must be a valid JSON type",
		},
		{
			description: "bad case format",
			content:     modelSource,
			args:        []string{"--case-format", "sideways"},
			absent:      []string{"box_epoxy.go"},
			expectErr:   true,
		},
	}
	for _, testCase := range testCases {
		dir := writePackage(t, testCase.content)
		stderr := new(bytes.Buffer)
		err := run(append(testCase.args, dir), stderr)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
		} else {
			assert.NoError(t, err, testCase.description)
		}
		for _, name := range testCase.expectFiles {
			assert.FileExists(t, filepath.Join(dir, name), testCase.description)
		}
		for _, name := range testCase.absent {
			assert.NoFileExists(t, filepath.Join(dir, name), testCase.description)
		}
		if testCase.log != "" {
			assert.Contains(t, stderr.String(), testCase.log, testCase.description)
		}
	}
}

func TestRun_Regenerate(t *testing.T) {
	dir := writePackage(t, modelSource)
	require.NoError(t, run([]string{dir}, new(bytes.Buffer)))
	first, err := os.ReadFile(filepath.Join(dir, "crate_epoxy.go"))
	require.NoError(t, err)
	assert.Regexp(t, `parent\s+\*BoxJSONBinder`, string(first))

	require.NoError(t, run([]string{dir}, new(bytes.Buffer)))
	second, err := os.ReadFile(filepath.Join(dir, "crate_epoxy.go"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRun_Args(t *testing.T) {
	assert.Error(t, run([]string{"a", "b"}, new(bytes.Buffer)))
	assert.NoError(t, run([]string{"--help"}, new(bytes.Buffer)))
}
