package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/oasnote/profile"
)

func TestConfigRegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	assert.Empty(t, cfg.CPU)
	assert.Zero(t, cfg.MemRate)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse(nil))
	assert.Equal(t, profile.DefaultMemRate, cfg.MemRate)

	require.NoError(t, flags.Parse([]string{
		"--cpu-profile=cpu.prof",
		"--heap-profile=heap.prof",
		"--allocs-profile=allocs.prof",
		"--mem-profile-rate=1024",
	}))
	assert.Equal(t, "cpu.prof", cfg.CPU)
	assert.Equal(t, "heap.prof", cfg.Heap)
	assert.Equal(t, "allocs.prof", cfg.Allocs)
	assert.Equal(t, 1024, cfg.MemRate)
}

func TestConfigRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.PersistentFlags())

	require.NoError(t, cfg.RegisterCompletions(cmd))

	fn, ok := cmd.GetFlagCompletionFunc("mem-profile-rate")
	require.True(t, ok)

	values, directive := fn(cmd, nil, "")
	assert.Nil(t, values)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	fn, ok = cmd.GetFlagCompletionFunc("cpu-profile")
	require.True(t, ok)

	values, directive = fn(cmd, nil, "")
	assert.Equal(t, []string{"prof", "pprof"}, values)
	assert.Equal(t, cobra.ShellCompDirectiveFilterFileExt, directive)

	assert.Error(t, profile.NewConfig().RegisterCompletions(&cobra.Command{Use: "empty"}))
}

// Not parallel: CPU profiling is process-wide.
func TestProfiler(t *testing.T) {
	dir := t.TempDir()

	cfg := profile.NewConfig()
	cfg.CPU = filepath.Join(dir, "cpu.prof")
	cfg.Heap = filepath.Join(dir, "heap.prof")
	cfg.MemRate = profile.DefaultMemRate

	p := cfg.NewProfiler()

	require.NoError(t, p.Stop(), "stop before start")
	require.NoError(t, p.Start())
	require.NoError(t, p.Start(), "second start")
	require.NoError(t, p.Stop())
	require.NoError(t, p.Stop(), "second stop")

	for _, name := range []string{"cpu.prof", "heap.prof"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Positive(t, info.Size(), name)
	}

	_, err := os.Stat(filepath.Join(dir, "allocs.prof"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProfilerErrors(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "no", "such", "dir")

	t.Run("cpu", func(t *testing.T) {
		t.Parallel()

		cfg := profile.NewConfig()
		cfg.CPU = filepath.Join(missing, "cpu.prof")

		assert.ErrorContains(t, cfg.NewProfiler().Start(), "create cpu profile")
	})

	t.Run("heap", func(t *testing.T) {
		t.Parallel()

		cfg := profile.NewConfig()
		cfg.Heap = filepath.Join(missing, "heap.prof")
		cfg.MemRate = profile.DefaultMemRate

		p := cfg.NewProfiler()
		require.NoError(t, p.Start())
		assert.ErrorContains(t, p.Stop(), "create heap profile")
	})
}
