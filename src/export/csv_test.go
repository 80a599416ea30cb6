package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/broker-client/src/models"
)

var results = []models.StockResult{
	{Label: "FOLD", Value: 1520.5, Isin: "IRO1FOLD0001"},
	{Label: "KHODRO", Value: 2310, Isin: "IRO1IKCO0001"},
}

func TestWriteStocks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStocks(&buf, results))

	assert.Equal(t, "label,value,isin\nFOLD,1520.5,IRO1FOLD0001\nKHODRO,2310,IRO1IKCO0001\n", buf.String())
}

func TestStocksToCsv(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "exports")
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	outPath, err := StocksToCsv(outDir, results, "stocks", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "stocks_2026-03-01_09-30-00.csv"), outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FOLD,1520.5,IRO1FOLD0001")
}
