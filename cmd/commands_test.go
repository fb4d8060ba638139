package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/gnames/macrofitas/internal/iocache"
	"github.com/gnames/macrofitas/internal/iojournal"
	"github.com/gnames/macrofitas/internal/iotesting"
	"github.com/gnames/macrofitas/pkg/config"
	"github.com/gnames/macrofitas/pkg/journal"
	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRunCmd_Flags verifies flags of the run command.
func TestGetRunCmd_Flags(t *testing.T) {
	cmd := getRunCmd()
	assert.Equal(t, "run FILE", cmd.Use)
	assert.NotNil(t, cmd.RunE, "RunE should be set")

	tests := []struct {
		name, short string
	}{
		{"output", "o"},
		{"sources", "s"},
		{"force", "f"},
		{"no-progress", ""},
		{"skip-header", ""},
	}
	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.name)
		require.NotNil(t, flag, tt.name)
		assert.Equal(t, tt.short, flag.Shorthand, tt.name)
	}

	assert.Error(t, cmd.Args(cmd, nil), "input file is required")
}

// TestGetLookupCmd_Flags verifies flags of the lookup command.
func TestGetLookupCmd_Flags(t *testing.T) {
	cmd := getLookupCmd()
	assert.Contains(t, cmd.Long, "JSON")
	for _, n := range []string{"sources", "force", "compact"} {
		assert.NotNil(t, cmd.Flags().Lookup(n), n)
	}
}

func TestParseSources(t *testing.T) {
	ids := parseSources([]string{"gbif", "FLORA", "tropicos"})
	assert.Equal(t, []source.ID{source.GBIF, source.Flora}, ids)
}

func TestCacheCommands(t *testing.T) {
	cfg = iotesting.TempHome(t)
	cacheDir := config.CacheDir(cfg.HomeDir)
	c := iocache.New(cacheDir, source.Flora)
	require.NoError(t, c.Write("Aus bus", []record.Record{{"genus": "Aus"}}))

	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	require.NoError(t, runCacheStats(cmd))
	assert.Contains(t, buf.String(), "FloraBrasil")

	require.NoError(t, runCacheClear([]string{"flora"}))
	_, ok, err := c.Read("Aus bus")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJournalCommand(t *testing.T) {
	ctx := context.Background()
	cfg = iotesting.TempHome(t)

	j, err := iojournal.New(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, j.Add(ctx, journal.Entry{
		RunID: "11111111-run", Source: "gbif",
		Query: "Hebanthe eriantha", Status: "ok", Records: 650,
	}))
	require.NoError(t, j.Add(ctx, journal.Entry{
		RunID: "22222222-run", Source: "flora",
		Query: "Unknown Fakus plantus", Status: "not_found",
	}))
	require.NoError(t, j.Close())

	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	require.NoError(t, runJournal(cmd, "", true, 0))
	out := buf.String()
	assert.Contains(t, out, "Unknown Fakus plantus")
	assert.NotContains(t, out, "Hebanthe eriantha")

	buf.Reset()
	require.NoError(t, runJournal(cmd, "", false, 0))
	assert.Contains(t, buf.String(), "Hebanthe eriantha")
}

func TestNewLookupOutput(t *testing.T) {
	res := source.Found(source.Flora, "Aus bus",
		[]record.Record{{"genus": "Aus"}})
	out := newLookupOutput(res)
	assert.Equal(t, "flora", out.Source)
	assert.Equal(t, "ok", out.Status)
	assert.False(t, out.Retryable)
	assert.Len(t, out.Records, 1)

	res = source.Failed(source.GBIF, "Aus bus", source.TransportError,
		errors.New("timeout"))
	out = newLookupOutput(res)
	assert.Equal(t, "transport_error", out.Status)
	assert.Equal(t, "timeout", out.Error)
	assert.True(t, out.Retryable, "transport errors can be retried")

	res = source.Failed(source.Plant, "Aus bus", source.ParseError,
		errors.New("bad csv"))
	assert.False(t, newLookupOutput(res).Retryable)
}
