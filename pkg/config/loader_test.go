// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func TestLoadLayer(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		errContains string
		check       func(t *testing.T, l *Layer)
	}{
		{
			name: "yaml",
			file: "c.yaml",
			content: `
skip_none: true
apply_only: [optional-chaining]
remove_from_default_skip_list:
  - a
  - b
show_diff: false
save_timeout: 5s
`,
			check: func(t *testing.T, l *Layer) {
				require.NotNil(t, l.SkipNone)
				assert.True(t, *l.SkipNone)
				require.NotNil(t, l.ApplyOnly)
				assert.Equal(t, []string{"optional-chaining"}, *l.ApplyOnly)
				require.NotNil(t, l.RemoveFromSkip)
				assert.Equal(t, []string{"a", "b"}, *l.RemoveFromSkip)
				require.NotNil(t, l.ShowDiff)
				assert.False(t, *l.ShowDiff)
				assert.Nil(t, l.SkipOnly, "unset keys stay nil")
				assert.Nil(t, l.FormatOnSave, "unset keys stay nil")
				require.NotNil(t, l.SaveTimeout)
				assert.Equal(t, "5s", *l.SaveTimeout)
			},
		},
		{
			name:    "empty_yaml",
			file:    "c.yml",
			content: "",
			check: func(t *testing.T, l *Layer) {
				assert.Nil(t, l.SkipNone)
				assert.Nil(t, l.Command)
			},
		},
		{
			name:        "yaml_unknown_field",
			file:        "c.yaml",
			content:     "skipnone: true\n",
			errContains: "parsing YAML",
		},
		{
			name:    "json",
			file:    "c.json",
			content: `{"skip_only": ["x", "y"], "format_on_save": true, "command": "node ./cs.js"}`,
			check: func(t *testing.T, l *Layer) {
				require.NotNil(t, l.SkipOnly)
				assert.Equal(t, []string{"x", "y"}, *l.SkipOnly)
				require.NotNil(t, l.FormatOnSave)
				assert.True(t, *l.FormatOnSave)
				require.NotNil(t, l.Command)
				assert.Equal(t, "node ./cs.js", *l.Command)
			},
		},
		{
			name:        "json_unknown_field",
			file:        "c.json",
			content:     `{"showDiff": true}`,
			errContains: "parsing JSON",
		},
		{
			name: "hcl",
			file: "c.hcl",
			content: `
add_to_default_skip_list = ["one", "two"]
format_on_save = true
patterns = ["**/*.mts"]
`,
			check: func(t *testing.T, l *Layer) {
				require.NotNil(t, l.AddToSkip)
				assert.Equal(t, []string{"one", "two"}, *l.AddToSkip)
				require.NotNil(t, l.FormatOnSave)
				assert.True(t, *l.FormatOnSave)
				require.NotNil(t, l.Patterns)
				assert.Equal(t, []string{"**/*.mts"}, *l.Patterns)
				assert.Nil(t, l.ShowDiff)
			},
		},
		{
			name:        "hcl_unknown_attribute",
			file:        "c.hcl",
			content:     `show = true`,
			errContains: "decoding HCL",
		},
		{
			name:        "unsupported_extension",
			file:        "c.toml",
			content:     `skip_none = true`,
			errContains: "unsupported file extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), tt.file, tt.content)

			layer, err := LoadLayer(testContext(), p)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, p, layer.Source)
			tt.check(t, layer)
		})
	}
}

func TestLoadLayerMissingFile(t *testing.T) {
	_, err := LoadLayer(testContext(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	userDir := filepath.Join(root, "user")
	writeFile(t, userDir, "config.yaml", `
skip_none: true
add_to_default_skip_list: [u1]
format_on_save: true
`)
	writeFile(t, root, "project/.chaingate.json", `{"add_to_default_skip_list": ["w1"], "show_diff": false}`)
	docDir := filepath.Join(root, "project", "src", "deep")
	require.NoError(t, os.MkdirAll(docDir, 0o755))
	explicit := writeFile(t, root, "explicit.hcl", `save_timeout = "3s"`)

	flags := &Layer{ShowDiff: ptr(true)}

	cfg, err := Load(testContext(), LoadOptions{
		UserDir:     userDir,
		DocumentDir: docDir,
		File:        explicit,
		Flags:       flags,
	})
	require.NoError(t, err)

	assert.True(t, cfg.Transform.SkipNone, "user layer")
	assert.True(t, cfg.Transform.FormatOnSave, "user layer")
	assert.Equal(t, []string{"w1"}, cfg.Transform.AddToSkip, "workspace beats user")
	assert.True(t, cfg.Transform.ShowDiff, "flags beat workspace")
	assert.Equal(t, 3*time.Second, cfg.SaveTimeout, "explicit file")

	sources := cfg.Sources()
	require.Len(t, sources, 4)
	assert.Equal(t, filepath.Join(userDir, "config.yaml"), sources[0])
	assert.Equal(t, filepath.Join(root, "project", ".chaingate.json"), sources[1])
	assert.Equal(t, explicit, sources[2])
	assert.Equal(t, "flags", sources[3])
}

func TestLoadSkipUser(t *testing.T) {
	root := t.TempDir()
	userDir := filepath.Join(root, "user")
	writeFile(t, userDir, "config.yaml", "skip_none: true\n")

	cfg, err := Load(testContext(), LoadOptions{UserDir: userDir, SkipUser: true})
	require.NoError(t, err)
	assert.False(t, cfg.Transform.SkipNone)
	assert.Empty(t, cfg.Sources())
}

func TestLoadInvalid(t *testing.T) {
	root := t.TempDir()
	explicit := writeFile(t, root, "bad.yaml", "command: \"\"\n")

	_, err := Load(testContext(), LoadOptions{SkipUser: true, File: explicit})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating config")
}

func TestFindWorkspaceFile(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "a/.chaingate.yml", "show_diff: true\n")
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, ok := FindWorkspaceFile(nested)
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = FindWorkspaceFile(filepath.Join(root))
	assert.False(t, ok, "files below the start directory are not considered")
}

func TestParserSelection(t *testing.T) {
	tests := []struct {
		filename string
		want     Parser
	}{
		{filename: "config.yaml", want: &YAMLParser{}},
		{filename: "CONFIG.YML", want: &YAMLParser{}},
		{filename: ".chaingate.json", want: &JSONParser{}},
		{filename: "x.hcl", want: &HCLParser{}},
		{filename: "x.toml", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.IsType(t, tt.want, got)
		})
	}
}
