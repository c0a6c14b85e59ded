package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-recommender/internal/infrastructure/config"
)

const recipePage = `<html><body>
<h1 class="recipe-title">Pancakes</h1>
<ul>
  <li class="ingredient">flour</li>
  <li class="ingredient">eggs</li>
</ul>
<div class="instructions">Mix all ingredients in a bowl and fry.</div>
</body></html>`

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Scraper.RetryCount = 0
	cfg.Scraper.Timeout = 5 * time.Second
	cfg.Cache.Enabled = false
	return cfg
}

func recipeServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(recipePage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_Recommends(t *testing.T) {
	srv := recipeServer(t)

	var out bytes.Buffer
	err := run(context.Background(), &out, testConfig(), options{
		url:          srv.URL,
		user:         defaultUser,
		instructions: defaultInstructions,
	})

	require.NoError(t, err)
	assert.Equal(t, "Recommended Recipe: Pancakes\n", out.String())
}

func TestRun_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	err := run(context.Background(), &out, testConfig(), options{
		url:          srv.URL,
		user:         defaultUser,
		instructions: defaultInstructions,
	})

	require.NoError(t, err)
	assert.Equal(t, "No recipe recommendation available.\n", out.String())
}

func TestRun_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var out bytes.Buffer
	err := run(context.Background(), &out, testConfig(), options{
		url:          url,
		user:         defaultUser,
		instructions: defaultInstructions,
	})

	require.NoError(t, err)
	assert.Equal(t, "No recipe recommendation available.\n", out.String())
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	user, err := cmd.Flags().GetString("user")
	require.NoError(t, err)
	assert.Equal(t, "JohnDoe", user)

	instructions, err := cmd.Flags().GetString("instructions")
	require.NoError(t, err)
	assert.Equal(t, "Mix all ingredients in a bowl", instructions)
}

func TestRootCmd_Executes(t *testing.T) {
	srv := recipeServer(t)
	t.Setenv("APP_CACHE_ENABLED", "false")

	buf := new(bytes.Buffer)
	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--url", srv.URL, "--instructions", "fry pancakes"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Recommended Recipe: Pancakes\n", buf.String())
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"extra"})

	assert.Error(t, cmd.Execute())
}
