// Package csvexport turns billing report records into CSV.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

// Encode writes a header taken from the first record's keys, in order, followed by
// one row per record. Keys missing from a later record become empty cells; keys
// absent from the first record are not exported. No records yields empty output.
func Encode(records []types.Record) ([]byte, error) {
	if len(records) == 0 {
		return []byte{}, nil
	}
	header := records[0].Keys()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	row := make([]string, len(header))
	for _, r := range records {
		for i, key := range header {
			v, _ := r.Get(key)
			cell, err := formatCell(v)
			if err != nil {
				return nil, err
			}
			row[i] = cell
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// numberLiteral matches json.Number, which keeps the digits exactly as received.
type numberLiteral interface {
	String() string
	Float64() (float64, error)
}

func formatCell(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case numberLiteral:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// FileName is the download name for a report generated at t.
func FileName(t time.Time) string {
	return "billing_report_" + t.UTC().Format(types.DateLayout) + ".csv"
}
