// Package recordfile persists parcel records as a plain text file with one
// line per parcel:
//
//	id,destination,weight,priority,status,zone
//
// status is the ordinal. Writes go to a temporary file that replaces the
// target on commit, so a crash never leaves a half-written snapshot.
package recordfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
)

const fieldsPerRecord = 6

// Decode reads records from r. Blank lines and lines starting with '#' are
// skipped.
func Decode(r io.Reader) ([]parcel.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fieldsPerRecord
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	records := make([]parcel.Record, 0)
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read parcel record: %w", err)
		}

		line, _ := cr.FieldPos(0)
		rec, err := decodeFields(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
}

func decodeFields(fields []string) (parcel.Record, error) {
	weight, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return parcel.Record{}, errs.NewValueIsInvalidErrorWithCause("weight", err)
	}
	if err = parcel.ValidateWeight(weight); err != nil {
		return parcel.Record{}, err
	}
	priority, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return parcel.Record{}, errs.NewValueIsInvalidErrorWithCause("priority", err)
	}
	ordinal, err := strconv.Atoi(strings.TrimSpace(fields[4]))
	if err != nil {
		return parcel.Record{}, errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	status := parcel.Status(ordinal)
	if err = status.Validate(); err != nil {
		return parcel.Record{}, err
	}

	return parcel.Record{
		ID:          strings.TrimSpace(fields[0]),
		Destination: strings.TrimSpace(fields[1]),
		Weight:      weight,
		Priority:    priority,
		Status:      status,
		Zone:        strings.TrimSpace(fields[5]),
	}, nil
}

// Encode writes one line per record.
func Encode(w io.Writer, records []parcel.Record) error {
	cw := csv.NewWriter(w)
	for _, rec := range records {
		if err := cw.Write([]string{
			rec.ID,
			rec.Destination,
			strconv.FormatFloat(rec.Weight, 'f', -1, 64),
			strconv.Itoa(rec.Priority),
			strconv.Itoa(int(rec.Status)),
			rec.Zone,
		}); err != nil {
			return fmt.Errorf("write parcel record %s: %w", rec.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
