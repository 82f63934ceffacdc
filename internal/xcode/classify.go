package xcode

import (
	"os"
	"strings"
)

// FailureKind distinguishes why an xcodebuild run failed.
type FailureKind int

const (
	// FailureBuild means compilation or linking failed.
	FailureBuild FailureKind = iota
	// FailureTest means the build succeeded but tests failed.
	FailureTest
)

func (k FailureKind) String() string {
	if k == FailureBuild {
		return "build"
	}
	return "test"
}

// buildFailureMarkers are the lines xcodebuild emits when the failure
// happened before any test ran.
var buildFailureMarkers = []string{
	"** BUILD FAILED **",
	"** BUILD INTERRUPTED **",
	"The following build commands failed:",
	"xcodebuild: error:",
}

// ClassifyFailure decides whether a failed run was a build failure or a
// test failure by scanning the tail of the captured log for build-failure
// markers. Anything without such a marker is treated as a test failure.
func ClassifyFailure(logTail string) FailureKind {
	for _, marker := range buildFailureMarkers {
		if strings.Contains(logTail, marker) {
			return FailureBuild
		}
	}
	return FailureTest
}

// tailLineCount is how much of the log the classifier looks at.
const tailLineCount = 200

// TailOfFile returns the last tailLineCount lines of the file at path.
// A read error yields an empty string; the classifier then defaults to
// reporting a test failure.
func TailOfFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > tailLineCount {
		lines = lines[len(lines)-tailLineCount:]
	}
	return strings.Join(lines, "\n")
}
