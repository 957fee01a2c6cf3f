package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/reflective-room/internal/app"
	"github.com/noah-isme/reflective-room/internal/models"
	"github.com/noah-isme/reflective-room/internal/service"
	"github.com/noah-isme/reflective-room/pkg/config"
	"github.com/noah-isme/reflective-room/pkg/tabular"
)

func testCLIConfig() *config.Config {
	return &config.Config{
		Env: config.EnvDevelopment,
		Log: config.LogConfig{Level: "error", Format: "console"},
		Store: config.StoreConfig{
			Backend:              config.StoreMemory,
			SubmissionsWorksheet: "Submissions",
			PromptsWorksheet:     "WeeklyPrompt",
		},
		Poster: config.PosterConfig{LineCapacity: 11, WrapWidth: 30, TitleWidth: 40},
	}
}

func newTestContext(t *testing.T, seed ...models.Submission) (*commandContext, *app.Store) {
	t.Helper()
	cfg := testCLIConfig()
	store := app.NewStore(tabular.NewMemory(), cfg.Store, nil)
	_, err := store.Migrate(context.Background())
	require.NoError(t, err)
	for i := range seed {
		_, err := store.Submissions.Append(context.Background(), &seed[i])
		require.NoError(t, err)
	}

	ctx := newCommandContext()
	ctx.loadConfig = func() (*config.Config, error) { return cfg, nil }
	ctx.openStore = func(context.Context, *config.Config, *zap.Logger) (*app.Store, error) { return store, nil }
	return ctx, store
}

func runCLI(t *testing.T, ctx *commandContext, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommandWith(ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func intPtr(v int) *int { return &v }

func TestStatsRendersLeaderboard(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx, _ := newTestContext(t,
		models.Submission{Author: "Ada", Poem: "one", Timestamp: at, Score: intPtr(7)},
		models.Submission{Author: "Ada", Poem: "two", Timestamp: at, Score: intPtr(2)},
		models.Submission{Author: "Grace", Poem: "three", Timestamp: at, Score: intPtr(8)},
	)

	out, err := runCLI(t, ctx, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Submissions: 3")
	assert.Contains(t, out, "Most poems:")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Grace")
	assert.Contains(t, out, "9")
}

func TestStatsEmptyStore(t *testing.T) {
	ctx, _ := newTestContext(t)

	out, err := runCLI(t, ctx, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Submissions: 0")
	assert.NotContains(t, out, "Most poems:")
}

func TestMigrateReportsCanonicalLayout(t *testing.T) {
	ctx, _ := newTestContext(t)

	out, err := runCLI(t, ctx, "", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "already use the canonical layout")
}

func TestFeaturedWithoutSelection(t *testing.T) {
	ctx, _ := newTestContext(t, models.Submission{Author: "Ada", Poem: "quiet", Timestamp: time.Now()})

	out, err := runCLI(t, ctx, "", "featured")
	require.NoError(t, err)
	assert.Contains(t, out, "No poem is featured")
}

func TestFeaturedPrintsPoem(t *testing.T) {
	ctx, _ := newTestContext(t, models.Submission{Author: "Ada", Title: "Dusk", Poem: "quiet light", Timestamp: time.Now(), Featured: true})

	out, err := runCLI(t, ctx, "", "featured")
	require.NoError(t, err)
	assert.Contains(t, out, "Dusk")
	assert.Contains(t, out, "quiet light")
}

func TestFeaturedMatchesAdminService(t *testing.T) {
	ctx, store := newTestContext(t,
		models.Submission{Author: "Ada", Poem: "first pick", Timestamp: time.Now(), Featured: true},
		models.Submission{Author: "Bo", Poem: "second pick", Timestamp: time.Now(), Featured: true},
	)

	want, err := service.NewAdminService(store.Submissions, nil, nil, service.AdminConfig{}).Featured(context.Background())
	require.NoError(t, err)

	out, err := runCLI(t, ctx, "", "featured")
	require.NoError(t, err)
	assert.Contains(t, out, want.Poem)
	assert.Contains(t, out, fmt.Sprintf("Row %d", want.Row))
}

func TestPosterFromStdin(t *testing.T) {
	ctx, _ := newTestContext(t)
	target := filepath.Join(t.TempDir(), "poster.pdf")

	out, err := runCLI(t, ctx, "a line\nanother line\n", "poster", "--in", "-", "--title", "Evening", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 page poster")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPosterFromStoredRow(t *testing.T) {
	ctx, store := newTestContext(t, models.Submission{Author: "Ada", Poem: "stored poem", Timestamp: time.Now()})
	subs, err := store.Submissions.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	target := filepath.Join(t.TempDir(), "row.pdf")

	_, err = runCLI(t, ctx, "", "poster", "--row", strconv.Itoa(subs[0].Row), "--out", target)
	require.NoError(t, err)
	_, err = os.Stat(target)
	assert.NoError(t, err)
}

func TestPosterRequiresSingleSource(t *testing.T) {
	ctx, _ := newTestContext(t)

	_, err := runCLI(t, ctx, "", "poster", "--out", filepath.Join(t.TempDir(), "x.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of --in or --row")
}

func TestPosterRejectsBlankPoem(t *testing.T) {
	ctx, _ := newTestContext(t)

	_, err := runCLI(t, ctx, "   \n", "poster", "--in", "-", "--out", filepath.Join(t.TempDir(), "x.pdf"))
	assert.Error(t, err)
}
