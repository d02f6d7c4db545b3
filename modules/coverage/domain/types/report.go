package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ReportRange struct {
	Start time.Time
	End   time.Time
}

func ParseReportRange(start string, end string) (ReportRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return ReportRange{}, fmt.Errorf("invalid start date %q", start)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return ReportRange{}, fmt.Errorf("invalid end date %q", end)
	}
	if e.Before(s) {
		return ReportRange{}, errors.New("end date is before start date")
	}
	return ReportRange{Start: s, End: e}, nil
}

type Report struct {
	GeneratedAt     Timestamp          `json:"generatedAt"`
	Summary         []ReportSummaryRow `json:"summary"`
	DetailedRecords []Record           `json:"detailedRecords"`
}

// ReportSummaryRow is one status group; the backend names the group key "_id".
type ReportSummaryRow struct {
	Status      string          `json:"_id"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// Record is a JSON object that remembers the order of its keys. Numbers are kept as
// json.Number so they can be written back exactly as received.
type Record struct {
	keys   []string
	values map[string]any
}

func (r *Record) Set(key string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

func (r Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r Record) Keys() []string { return append([]string(nil), r.keys...) }

func (r Record) Len() int { return len(r.keys) }

func (r *Record) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("types: record must be a JSON object")
	}
	out := Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return errors.New("types: record key must be a string")
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
