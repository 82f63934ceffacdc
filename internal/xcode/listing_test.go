package xcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const projectListing = `Information about project "MyApp":
    Targets:
        MyApp
        MyAppTests
        MyAppUITests

    Build Configurations:
        Debug
        Release

    Schemes:
        MyApp
        MyAppDev
`

const workspaceListing = `Information about workspace "MyApp":
    Schemes:
        MyApp
        MyAppTests
`

const bareListing = `Information about project "Lib":
    Targets:
        Lib

    Schemes:
        Lib
`

func TestFirstScheme(t *testing.T) {
	assert.Equal(t, "MyApp", FirstScheme(projectListing))
	assert.Equal(t, "MyApp", FirstScheme(workspaceListing))
	assert.Equal(t, "", FirstScheme("no schemes section here"))
}

func TestHasTestTargets_TargetsSection(t *testing.T) {
	assert.True(t, HasTestTargets(projectListing))
}

func TestHasTestTargets_FallbackSubstring(t *testing.T) {
	// workspace listings have no Targets section; the substring
	// fallback catches the test scheme
	assert.True(t, HasTestTargets(workspaceListing))
}

func TestHasTestTargets_None(t *testing.T) {
	assert.False(t, HasTestTargets(bareListing))
	assert.False(t, HasTestTargets(""))
}
