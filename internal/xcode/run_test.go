package xcode

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipit/internal/execx"
)

func TestRun_BuildActionWithoutTestTargets(t *testing.T) {
	fake := &execx.FakeRunner{}
	tool := NewTool(fake, t.TempDir())
	c := Container{Path: "MyApp.xcodeproj"}

	result := tool.Run(context.Background(), c, "MyApp", "dest", bareListing)

	require.NoError(t, result.Err)
	assert.False(t, result.Tested)
	assert.Empty(t, result.LogPath)

	require.Len(t, fake.Calls, 1)
	line := fake.Calls[0].String()
	assert.True(t, strings.HasSuffix(line, "build"), "line: %s", line)
	assert.NotContains(t, line, "-destination")
}

func TestRun_TestActionWithTestTargets(t *testing.T) {
	fake := &execx.FakeRunner{}
	tool := NewTool(fake, t.TempDir())
	c := Container{Path: "MyApp.xcworkspace", IsWorkspace: true}

	result := tool.Run(context.Background(), c, "MyApp", "platform=iOS Simulator,name=iPhone 17", projectListing)

	require.NoError(t, result.Err)
	assert.True(t, result.Tested)

	require.Len(t, fake.Calls, 1)
	line := fake.Calls[0].String()
	assert.Contains(t, line, "-workspace MyApp.xcworkspace")
	assert.Contains(t, line, "-destination")
	assert.True(t, strings.HasSuffix(line, "test"), "line: %s", line)
}

func TestRun_FailureKeepsLogAndClassifies(t *testing.T) {
	fake := &execx.FakeRunner{
		Responses: []execx.FakeResponse{{
			Prefix: "xcodebuild",
			Stdout: "CompileSwift normal failed\n** BUILD FAILED **\n",
			Err:    errors.New("exit status 65"),
		}},
	}
	tool := NewTool(fake, t.TempDir())

	result := tool.Run(context.Background(), Container{Path: "MyApp.xcodeproj"}, "MyApp", "dest", bareListing)

	require.Error(t, result.Err)
	assert.Equal(t, FailureBuild, result.Failure)
	require.NotEmpty(t, result.LogPath)
	t.Cleanup(func() { os.Remove(result.LogPath) })

	// the captured log survives for inspection
	data, err := os.ReadFile(result.LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "** BUILD FAILED **")
}

func TestRun_SuccessRemovesLog(t *testing.T) {
	fake := &execx.FakeRunner{
		Responses: []execx.FakeResponse{{
			Prefix: "xcodebuild",
			Stdout: "** BUILD SUCCEEDED **\n",
		}},
	}
	tool := NewTool(fake, t.TempDir())

	result := tool.Run(context.Background(), Container{Path: "MyApp.xcodeproj"}, "MyApp", "dest", bareListing)

	require.NoError(t, result.Err)
	assert.Empty(t, result.LogPath)
}

func TestOpenInIDE(t *testing.T) {
	fake := &execx.FakeRunner{}
	tool := NewTool(fake, t.TempDir())

	require.NoError(t, tool.OpenInIDE(context.Background(), Container{Path: "MyApp.xcodeproj"}))
	require.Len(t, fake.Calls, 1)
	assert.Equal(t, "open MyApp.xcodeproj", fake.Calls[0].String())
}
