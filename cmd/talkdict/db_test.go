package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFormat(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{value: "json"},
		{value: "yaml"},
		{value: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var got ExportFormat
			err := got.Set(tt.value)
			if tt.wantErr {
				assert.EqualError(t, err, "invalid format: "+tt.value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, got.String())
			assert.Equal(t, "format", got.Type())
		})
	}
}

func TestNewDBCommand(t *testing.T) {
	cmd := newDBCommand()

	assert.Equal(t, "db", cmd.Use)
	assert.Equal(t, "Manage the MySQL dictionary", cmd.Short)
	assert.True(t, cmd.HasSubCommands())
}

func TestNewDBMigrateCommand(t *testing.T) {
	cmd := newDBMigrateCommand()

	assert.Equal(t, "migrate", cmd.Use)
	assert.Equal(t, "Apply pending schema migrations", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestNewDBImportCommand(t *testing.T) {
	cmd := newDBImportCommand()

	assert.Equal(t, "import [PATH]", cmd.Use)
	assert.Equal(t, "Import a dictionary file into the database", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	dryRunFlag := cmd.Flags().Lookup("dry-run")
	require.NotNil(t, dryRunFlag)
	assert.Equal(t, "false", dryRunFlag.DefValue)

	updateFlag := cmd.Flags().Lookup("update-existing")
	require.NotNil(t, updateFlag)
	assert.Equal(t, "false", updateFlag.DefValue)
}

func TestNewDBExportCommand(t *testing.T) {
	cmd := newDBExportCommand()

	assert.Equal(t, "export", cmd.Use)
	assert.Equal(t, "Export the database dictionary as a data file", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	formatFlag := cmd.Flags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "json", formatFlag.DefValue)

	outputFlag := cmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "", outputFlag.DefValue)
}

func TestDBCommands_RunE_configError(t *testing.T) {
	for _, args := range [][]string{{"migrate"}, {"import"}, {"export"}} {
		t.Run(args[0], func(t *testing.T) {
			setConfigFile(t, setupBrokenConfigFile(t))

			cmd := newDBCommand()
			cmd.SetArgs(args)
			err := cmd.Execute()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "load config")
		})
	}
}
