package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricpack/fabricpack/internal/raster"
)

func writeFixturePNG(t *testing.T, dir, name string, w, h int, c color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	require.NoError(t, raster.WritePNG(path, img), "writing fixture")
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	require.NoError(t, err, "fabricpack %v\noutput: %s", args, out.String())
	return out.String()
}

// TestCLIEndToEndLoadPackReconstruct drives load-bins, next-options, pack,
// and reconstruct through the same cobra command tree the binary runs,
// exercising the on-disk state handoff between invocations.
func TestCLIEndToEndLoadPackReconstruct(t *testing.T) {
	publicDir := t.TempDir()
	stateDirForTest := t.TempDir()
	stateDir = stateDirForTest

	writeFixturePNG(t, publicDir, "a.png", 150, 150, color.RGBA{R: 200, A: 255})

	spec := map[string]interface{}{
		"bins": []map[string]interface{}{
			{
				"name": "all",
				"fabrics": []map[string]string{
					{"id": "a", "image_path": "a.png"},
				},
			},
		},
	}
	specBytes, err := json.Marshal(spec)
	require.NoError(t, err, "marshal spec")
	specPath := filepath.Join(publicDir, "spec.json")
	require.NoError(t, os.WriteFile(specPath, specBytes, 0644), "write spec")

	out := run(t, "load-bins", "--bin-spec", specPath, "--public-dir", publicDir, "--sa", "0", "--threshold", "1000")
	sessionID := firstLine(out)
	require.NotEmpty(t, sessionID, "expected load-bins to print a session id")

	out = run(t, "next-options", "--session", sessionID, "--allow-empty")
	var opts []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &opts), "parsing next-options output: %s", out)
	require.NotEmpty(t, opts, "expected at least one candidate option")

	run(t, "pack", "--session", sessionID, "--index", "0")

	out = run(t, "reconstruct", "--session", sessionID, "--fabric-folder", publicDir, "--out", filepath.Join(stateDirForTest, "composite.png"))
	assert.True(t, fileContains(out, "composite.png"), "expected reconstruct output to mention composite.png, got %q", out)

	_, err = os.Stat(filepath.Join(stateDirForTest, "composite.png"))
	assert.NoError(t, err, "expected composite image to exist")
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}

func fileContains(haystack, needle string) bool {
	return bytes.Contains([]byte(haystack), []byte(needle))
}
