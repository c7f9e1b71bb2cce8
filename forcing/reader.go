package forcing

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/maseology/topmodel/errors"
)

var colnames = map[string]string{
	"date":                    "date",
	"temperature (celsius)":   "temperature",
	"temperature":             "temperature",
	"precipitation (mm/day)":  "precipitation",
	"precipitation":           "precipitation",
	"pet (mm/day)":            "pet",
	"pet":                     "pet",
	"flow_observed (mm/day)":  "flow_observed",
	"flow observed (mm/day)":  "flow_observed",
	"flow_observed":           "flow_observed",
}

// LoadCSV reads a timeseries file with a date column followed by
// temperature and precipitation, and optional pet and flow_observed columns.
func LoadCSV(fp string) (*Forcing, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses a timeseries from a reader, validating the header, dates and
// values.
func ReadCSV(r io.Reader) (*Forcing, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	hdr, err := cr.Read()
	if err != nil {
		return nil, errors.Validationf("forcing: empty file")
	}
	cols := make(map[string]int, len(hdr))
	for i, h := range hdr {
		nm, ok := colnames[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			return nil, errors.Validationf("forcing: unrecognized column %q", h)
		}
		cols[nm] = i
	}
	for _, req := range []string{"date", "temperature", "precipitation"} {
		if _, ok := cols[req]; !ok {
			return nil, errors.Validationf("forcing: missing required column %s", req)
		}
	}

	frc := &Forcing{}
	_, haspet := cols["pet"]
	_, hasobs := cols["flow_observed"]
	ln := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Validationf("forcing: line %d: %v", ln+1, err)
		}
		ln++
		dt, err := parseDate(rec[cols["date"]], ln)
		if err != nil {
			return nil, err
		}
		tc, err := parseField(rec, cols["temperature"], ln)
		if err != nil {
			return nil, err
		}
		p, err := parseField(rec, cols["precipitation"], ln)
		if err != nil {
			return nil, err
		}
		frc.T = append(frc.T, dt)
		frc.TempC = append(frc.TempC, tc)
		frc.P = append(frc.P, p)
		if haspet {
			v, err := parseField(rec, cols["pet"], ln)
			if err != nil {
				return nil, err
			}
			frc.PET = append(frc.PET, v)
		}
		if hasobs {
			v, err := parseField(rec, cols["flow_observed"], ln)
			if err != nil {
				return nil, err
			}
			frc.Qobs = append(frc.Qobs, v)
		}
	}
	if len(frc.T) > 1 {
		frc.IntervalSec = frc.T[1].Sub(frc.T[0]).Seconds()
	}
	if err := frc.Check(); err != nil {
		return nil, err
	}
	return frc, nil
}

func parseDate(s string, ln int) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, fmt := range []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02T15:04:05Z07:00"} {
		if dt, err := time.Parse(fmt, s); err == nil {
			return dt, nil
		}
	}
	return time.Time{}, errors.Validationf("forcing: line %d: unparseable date %q", ln, s)
}

func parseField(rec []string, i, ln int) (float64, error) {
	if i >= len(rec) || strings.TrimSpace(rec[i]) == "" {
		return 0., errors.Validationf("forcing: line %d: missing value", ln)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
	if err != nil {
		return 0., errors.Validationf("forcing: line %d: %v", ln, err)
	}
	return v, nil
}
