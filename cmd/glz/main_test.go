package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	table, err := parseTable("2, 0,1")
	require.NoError(t, err)
	require.Equal(t, []uint32{2, 0, 1}, table)

	_, err = parseTable("1,x")
	require.Error(t, err)

	_, err = parseTable("4294967296")
	require.Error(t, err)
}

func TestEncodeDecodeCommands(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("hello world, hello glz"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("glz glz glz glz"), 0o600))

	container := filepath.Join(dir, "out.glz")
	err := cmdEncode([]string{"-archive", "-checksum", "-varint", "-compress", "s2", "-q", "-o", container, a, b})
	require.NoError(t, err)

	t.Run("By name", func(t *testing.T) {
		out := filepath.Join(dir, "b.out")
		require.NoError(t, cmdDecode([]string{"-file", b, "-o", out, container}))
		got, err := os.ReadFile(out)
		require.NoError(t, err)
		require.Equal(t, "glz glz glz glz", string(got))
	})

	t.Run("By index", func(t *testing.T) {
		out := filepath.Join(dir, "a.out")
		require.NoError(t, cmdDecode([]string{"-i", "0", "-o", out, container}))
		got, err := os.ReadFile(out)
		require.NoError(t, err)
		require.Equal(t, "hello world, hello glz", string(got))
	})

	t.Run("All", func(t *testing.T) {
		out := filepath.Join(dir, "all.out")
		require.NoError(t, cmdDecode([]string{"-o", out, container}))
		got, err := os.ReadFile(out)
		require.NoError(t, err)
		require.Equal(t, "hello world, hello glzglz glz glz glz", string(got))
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, cmdList([]string{container}))
	})

	t.Run("Errors", func(t *testing.T) {
		require.Error(t, cmdDecode([]string{"-off", "0", container}))
		require.Error(t, cmdDecode([]string{"-i", "9", container}))
		require.Error(t, cmdDecode(nil))
		require.Error(t, cmdEncode([]string{a}))
		require.Error(t, cmdEncode([]string{"-o", container}))
		require.Error(t, cmdEncode([]string{"-compress", "bzip", "-o", container, a}))
		require.Error(t, cmdList([]string{filepath.Join(dir, "missing.glz")}))
		require.Error(t, cmdList(nil))
	})
}
