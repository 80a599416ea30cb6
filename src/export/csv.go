package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/jiaming2012/broker-client/src/models"
)

// StocksToCsv writes the results of a stock search to <outDir>/<prefix>_<timestamp>.csv.
func StocksToCsv(outDir string, results []models.StockResult, outFilePrefix string, now time.Time) (string, error) {
	outFilePath := path.Join(outDir, fmt.Sprintf("%s_%s.csv", outFilePrefix, now.Format("2006-01-02_15-04-05")))

	// Create directory if it doesn't exist
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			return "", fmt.Errorf("StocksToCsv: failed to create directory: %w", err)
		}
	}

	file, err := os.Create(outFilePath)
	if err != nil {
		return "", fmt.Errorf("StocksToCsv: failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteStocks(file, results); err != nil {
		return "", fmt.Errorf("StocksToCsv: %w", err)
	}

	return outFilePath, nil
}

func WriteStocks(w io.Writer, results []models.StockResult) error {
	writer := gocsv.NewSafeCSVWriter(csv.NewWriter(w))
	if err := gocsv.MarshalCSV(&results, writer); err != nil {
		return fmt.Errorf("WriteStocks: failed to write csv: %w", err)
	}

	return nil
}
