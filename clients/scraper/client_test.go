package scraper

import (
	"errors"
	"testing"

	"github.com/go-rod/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureBrowserConnectsOnceAndOutlivesCommands(t *testing.T) {
	c := NewScraperClient()
	connects := 0
	c.connect = func() (*rod.Browser, error) {
		connects++
		return rod.New(), nil
	}

	first, err := c.ensureBrowser()
	require.NoError(t, err)
	second, err := c.ensureBrowser()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, connects)
	// the cached browser must not be tied to any command's context
	require.NoError(t, first.GetContext().Err())
}

func TestEnsureBrowserRetriesAfterFailedLaunch(t *testing.T) {
	c := NewScraperClient()
	calls := 0
	c.connect = func() (*rod.Browser, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("chromium not found")
		}
		return rod.New(), nil
	}

	_, err := c.ensureBrowser()
	require.Error(t, err)

	browser, err := c.ensureBrowser()
	require.NoError(t, err)
	assert.NotNil(t, browser)
	assert.Equal(t, 2, calls)
}
