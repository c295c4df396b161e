// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dates parses flexible date input and formats arXiv timestamps.
package dates

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// arxivStampFmt is the timestamp format the arXiv API expects in
// submittedDate range queries.
const arxivStampFmt = "20060102150405"

// Parse interprets a date-like string ("2021-01-01", "Jan 2, 2021 15:04",
// RFC3339, ...) in UTC. Returns an error naming the input when it cannot
// be parsed.
func Parse(dateLike string) (time.Time, error) {
	t, err := dateparse.ParseIn(dateLike, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse date %q: %w", dateLike, err)
	}
	return t, nil
}

// ArxivStamp formats t as an arXiv submittedDate timestamp in UTC.
func ArxivStamp(t time.Time) string {
	return t.UTC().Format(arxivStampFmt)
}

// ParseStamp parses an arXiv submittedDate timestamp back into a UTC time.
func ParseStamp(stamp string) (time.Time, error) {
	t, err := time.ParseInLocation(arxivStampFmt, stamp, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid arXiv timestamp %q: %w", stamp, err)
	}
	return t, nil
}
