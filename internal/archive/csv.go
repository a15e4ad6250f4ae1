package archive

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/tomasrey/eod-snapshot/internal/model"
)

// header follows the canonical column order: date, symbol, price, volume.
var header = []string{"fecha", "moneda", "cotizacion", "volumen"}

// dateLayout matches the timestamp format of the historical archive files.
const dateLayout = "2006-01-02 15:04:05"

// EncodeCSV renders the records as UTF-8 delimited text with a header row,
// preserving record order.
func EncodeCSV(quotes []model.Quote) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, q := range quotes {
		row := []string{
			q.TradeDate.Format(dateLayout),
			q.Symbol,
			strconv.FormatFloat(q.Price, 'f', -1, 64),
			strconv.FormatInt(q.Volume, 10),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row for %s: %w", q.Symbol, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
