package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"discover", "batch", "scrape", "merge"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "transfer-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestDiscoverCommand_Flags(t *testing.T) {
	flag := discoverCmd.Flags().Lookup("input")
	require.NotNil(t, flag, "discover command should have --input flag")

	outFlag := discoverCmd.Flags().Lookup("output")
	require.NotNil(t, outFlag)
	assert.Equal(t, ".", outFlag.DefValue)
}

func TestBatchCommand_Flags(t *testing.T) {
	flag := batchCmd.Flags().Lookup("parts")
	require.NotNil(t, flag, "batch command should have --parts flag")
	assert.Equal(t, "4", flag.DefValue)
}

func TestScrapeCommand_Flags(t *testing.T) {
	flag := scrapeCmd.Flags().Lookup("batch")
	require.NotNil(t, flag, "scrape command should have --batch flag")

	csvFlag := scrapeCmd.Flags().Lookup("no-csv")
	require.NotNil(t, csvFlag)
	assert.Equal(t, "false", csvFlag.DefValue)
}

func TestMergeCommand_Flags(t *testing.T) {
	for _, name := range []string{"input", "stats-dir", "output", "unresolved"} {
		require.NotNil(t, mergeCmd.Flags().Lookup(name), "merge command should have --%s flag", name)
	}
	assert.Equal(t, "transfers_with_stats.csv", mergeCmd.Flags().Lookup("output").DefValue)
}
