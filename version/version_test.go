package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevisionFrom(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		settings []debug.BuildSetting
		want     string
	}{
		"no vcs info": {
			want: "unknown",
		},
		"clean": {
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.modified", Value: "false"},
			},
			want: "abc123",
		},
		"dirty": {
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.modified", Value: "true"},
			},
			want: "abc123-dirty",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, revisionFrom(tc.settings))
		})
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	s := String()
	assert.True(t, strings.HasPrefix(s, "dev (revision "+Revision+", "), s)
	assert.True(t, strings.HasSuffix(s, " "+GoOS+"/"+GoArch+")"), s)
}
