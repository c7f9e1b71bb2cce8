package twi

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/maseology/topmodel/errors"
)

// LoadCSV reads a bin,twi,proportion,cells distribution file.
func LoadCSV(fp string) (*Distribution, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses a distribution from a reader, checking the header and
// rejecting missing values.
func ReadCSV(r io.Reader) (*Distribution, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	hdr, err := cr.Read()
	if err != nil {
		return nil, errors.Validationf("twi: empty file")
	}
	itwi, iprop := -1, -1
	for i, h := range hdr {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "twi":
			itwi = i
		case "proportion":
			iprop = i
		case "bin", "cells": // carried for provenance, unused here
		default:
			return nil, errors.Validationf("twi: unrecognized column %q", h)
		}
	}
	if itwi < 0 || iprop < 0 {
		return nil, errors.Validationf("twi: header must contain twi and proportion columns, got %v", hdr)
	}

	var vals, fracs []float64
	ln := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Validationf("twi: line %d: %v", ln+1, err)
		}
		ln++
		v, err := parseField(rec, itwi, ln)
		if err != nil {
			return nil, err
		}
		p, err := parseField(rec, iprop, ln)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
		fracs = append(fracs, p)
	}
	return New(vals, fracs)
}

func parseField(rec []string, i, ln int) (float64, error) {
	if i >= len(rec) || strings.TrimSpace(rec[i]) == "" {
		return 0., errors.Validationf("twi: line %d: missing value", ln)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
	if err != nil {
		return 0., errors.Validationf("twi: line %d: %v", ln, err)
	}
	return v, nil
}
