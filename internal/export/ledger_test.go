package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportLedgerWritesWorkbookWithConsumedFabric(t *testing.T) {
	s := buildTestSession(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.xlsx")

	require.NoError(t, ExportLedger(path, s))
	_, err := os.Stat(path)
	require.NoError(t, err, "expected workbook to exist")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err, "unexpected error reopening workbook")
	defer f.Close()

	rows, err := f.GetRows(ledgerSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2, "expected header row plus one fabric row")

	assert.Equal(t, "Fabric ID", rows[0][0], "expected header row to start with Fabric ID")
	assert.Equal(t, "consumed", rows[1][5], "expected fabric to be marked consumed")
	assert.Equal(t, "0", rows[1][6], "expected consumed at step 0")
}
