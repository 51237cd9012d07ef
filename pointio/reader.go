// Package pointio reads city files into points.
//
// Format: one city per line, "id x y", fields separated by any run of spaces
// or tabs. Blank lines are skipped. Ids are 1-based and must cover 1..N
// exactly once; the city with id k becomes point index k-1, so the city
// with id 1 is the tour origin. Coordinates may be integers or reals.
package pointio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/salesman/geom"
)

// Sentinel errors; all are wrapped with the offending line number.
var (
	// ErrMalformedLine indicates a line without exactly three numeric fields.
	ErrMalformedLine = errors.New("pointio: malformed line")

	// ErrBadID indicates an id outside 1..N or an id used twice.
	ErrBadID = errors.New("pointio: bad city id")
)

type record struct {
	id   int
	line int
	p    geom.Point
}

// Read parses a city stream. An empty stream yields an empty slice and no
// error; the solver rejects it.
func Read(r io.Reader) ([]geom.Point, error) {
	var (
		recs []record
		sc   = bufio.NewScanner(r)
		line int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		rec, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec.line = line
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("pointio: read: %w", err)
	}

	points := make([]geom.Point, len(recs))
	placed := make([]bool, len(recs))
	for _, rec := range recs {
		k := rec.id - 1
		if k < 0 || k >= len(recs) {
			return nil, fmt.Errorf("line %d: %w: %d not in 1..%d", rec.line, ErrBadID, rec.id, len(recs))
		}
		if placed[k] {
			return nil, fmt.Errorf("line %d: %w: %d repeated", rec.line, ErrBadID, rec.id)
		}
		placed[k] = true
		points[k] = rec.p
	}

	return points, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) ([]geom.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pointio: %w", err)
	}
	defer f.Close()

	points, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return points, nil
}

func parseLine(text string) (record, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return record{}, fmt.Errorf("%w: want 3 fields, got %d", ErrMalformedLine, len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return record{}, fmt.Errorf("%w: id %q", ErrMalformedLine, fields[0])
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return record{}, fmt.Errorf("%w: x %q", ErrMalformedLine, fields[1])
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return record{}, fmt.Errorf("%w: y %q", ErrMalformedLine, fields[2])
	}

	return record{id: id, p: geom.Pt(x, y)}, nil
}
