package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inerr "github.com/vango-dev/inertia/internal/errors"
	"github.com/vango-dev/inertia/pkg/page"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func errorCode(err error) string {
	var e *inerr.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestPageEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"json", "page.json", `{"component":"Users/Index","props":{"name":"Ada"},"url":"/users"}`},
		{"yaml", "page.yaml", "component: Users/Index\nurl: /users\nprops:\n  name: Ada\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", "page", "encode", writeFile(t, tt.file, tt.body))
			require.NoError(t, err)

			encoded := strings.TrimSpace(out)
			p, err := page.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, "Users/Index", p.Component)
			assert.Equal(t, "/users", p.URL)
			assert.Equal(t, "Ada", p.Props["name"])

			out, _, err = execute(t, "", "page", "decode", encoded)
			require.NoError(t, err)
			assert.Contains(t, out, `"component": "Users/Index"`)
		})
	}
}

func TestPageEncodeInvalid(t *testing.T) {
	_, _, err := execute(t, "", "page", "encode", writeFile(t, "page.json", `{"props":{}}`))
	require.Error(t, err)
	assert.Equal(t, "E040", errorCode(err))
	assert.ErrorIs(t, err, page.ErrNoComponent)
}

func TestPageDecodeInvalid(t *testing.T) {
	_, _, err := execute(t, "", "page", "decode", "not base64!")
	require.Error(t, err)
	assert.Equal(t, "E040", errorCode(err))
}

func TestPageExtract(t *testing.T) {
	encoded, err := page.Encode(&page.Page{Component: "Home", URL: "/"})
	require.NoError(t, err)
	doc := `<html><body><div id="root"></div><div id="root-data" data-page="` + encoded + `"></div></body></html>`

	out, _, err := execute(t, doc, "page", "extract", "-", "--id", "root")
	require.NoError(t, err)
	assert.Contains(t, out, `"component": "Home"`)

	_, _, err = execute(t, doc, "page", "extract", "-")
	require.Error(t, err)
	assert.Equal(t, "E041", errorCode(err))
	assert.ErrorIs(t, err, page.ErrPayloadMissing)
}

func TestManifestVersion(t *testing.T) {
	path := writeFile(t, "manifest.json", `{"app.js":"app.123.js","app.css":"app.456.css"}`)
	out, errOut, err := execute(t, "", "manifest", "version", path)
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 16)
	assert.Contains(t, errOut, "2 entries")

	_, _, err = execute(t, "", "manifest", "version", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, "E081", errorCode(err))

	_, _, err = execute(t, "", "manifest", "version", "s3://bucket-only")
	assert.Equal(t, "E081", errorCode(err))
}
