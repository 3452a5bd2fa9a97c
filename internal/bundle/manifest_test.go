package bundle

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateManifest(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantKeyword string // empty means valid
	}{
		{"minimal", "name: docs\nversion: \"1.0.0\"\n", ""},
		{"full", "name: agent-context\nversion: v2.0.1-rc.1\ndescription: Reference docs\nmin_installer_version: \"0.3.0\"\n", ""},
		{"missing name", "version: \"1.0.0\"\n", "required"},
		{"bad name", "name: Agent_Context\nversion: \"1.0.0\"\n", "pattern"},
		{"bad version", "name: docs\nversion: latest\n", "pattern"},
		{"unknown key", "name: docs\nversion: \"1.0.0\"\nfiles: []\n", "additionalProperties"},
		{"wrong type", "name: docs\nversion: 1\n", "type"},
		{"integer key", "name: docs\nversion: \"1.0.0\"\n1: x\n", "additionalProperties"},
		{"boolean key", "name: docs\nversion: \"1.0.0\"\ntrue: x\n", "additionalProperties"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := ValidateManifest([]byte(tt.yaml))
			require.NoError(t, err)
			if tt.wantKeyword == "" {
				assert.Empty(t, issues)
				return
			}
			require.NotEmpty(t, issues)
			keywords := make([]string, 0, len(issues))
			for _, issue := range issues {
				assert.NotEmpty(t, issue.Message)
				keywords = append(keywords, issue.Keyword)
			}
			assert.Contains(t, keywords, tt.wantKeyword)
		})
	}
}

func TestValidateManifestInvalidYAML(t *testing.T) {
	_, err := ValidateManifest([]byte("name: [unterminated\n"))
	assert.Error(t, err)
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFile)
	writeFile(t, path, "name: docs\nversion: \"1.0.0\"\nmin_installer_version: \"0.2.0\"\n")

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "docs", m.Name)
	assert.Equal(t, "0.2.0", m.MinInstallerVersion)
}

func TestNormalizeYAMLStringifiesKeys(t *testing.T) {
	in := map[interface{}]interface{}{
		1:      "x",
		"name": []interface{}{map[interface{}]interface{}{true: "y"}},
	}
	want := map[string]interface{}{
		"1":    "x",
		"name": []interface{}{map[string]interface{}{"true": "y"}},
	}
	assert.Equal(t, want, normalizeYAML(in))
}

func TestLoadManifestNonStringKeyIsManifestError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFile)
	writeFile(t, path, "name: docs\nversion: \"1.0.0\"\n42: answer\n")

	_, err := LoadManifest(path)
	var merr *ManifestError
	require.ErrorAs(t, err, &merr)
	assert.Contains(t, merr.Error(), "42")
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), ManifestFile))
	assert.Error(t, err)
}

func TestManifestErrorMessage(t *testing.T) {
	err := &ManifestError{Path: "bundle.yaml", Issues: []ValidationIssue{
		{Path: "/version", Message: "bad"},
		{Message: "missing name"},
	}}
	assert.Equal(t, "invalid bundle manifest bundle.yaml: /version: bad; missing name", err.Error())
}
