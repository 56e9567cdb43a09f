package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"dashcap/internal/units"
)

var (
	// ErrMalformedDocument reports a JSON document whose top-level shape is
	// not an array and not an object wrapping one. Fatal for the whole file.
	ErrMalformedDocument = errors.New("malformed telemetry document")
	// ErrMissingTimestamp classifies an element without a timestamp field.
	ErrMissingTimestamp = errors.New("missing timestamp")
	// ErrUnparseableTimestamp classifies a timestamp value no resolution
	// attempt accepted.
	ErrUnparseableTimestamp = errors.New("unparseable timestamp")
)

// wrapperKeys are tried in order when the document is an object.
var wrapperKeys = []string{"data", "entries", "points"}

// Sample is one telemetry reading with its resolved timeline offset.
// Optional fields stay nil when absent or non-numeric in the source.
type Sample struct {
	Kind      TimestampKind
	Elapsed   float64
	Display   string
	Speed     *float64
	Latitude  *float64
	Longitude *float64
}

// Diagnostic records one skipped element and why it was dropped.
type Diagnostic struct {
	Index int
	Err   error
}

// Report is the outcome of parsing one document. Samples keep input order;
// len(Samples)+len(Skipped) always equals Total.
type Report struct {
	Total   int
	Samples []Sample
	Skipped []Diagnostic
}

// Options configure speed handling. Units come pre-resolved through
// units.Parse so unsupported names fail before any document work; zero units
// leave speed values untouched.
type Options struct {
	SourceUnit units.Unit
	TargetUnit units.Unit
}

// Parse materializes a telemetry document into ordered samples.
//
// The first element carrying an absolute datetime fixes the timeline origin;
// later absolute elements are offset against it and may land negative when
// the recorder clock stepped backwards. Elements without a resolvable
// timestamp are skipped and show up in the report. Samples are never
// re-sorted, so out-of-order input yields out-of-order captions.
func Parse(data []byte, opts Options) (*Report, error) {
	elements, err := documentElements(data)
	if err != nil {
		return nil, err
	}

	report := &Report{Total: len(elements)}
	var origin resolvedStamp
	originSet := false

	for idx, element := range elements {
		obj, ok := element.(map[string]any)
		if !ok {
			report.Skipped = append(report.Skipped, Diagnostic{
				Index: idx,
				Err:   fmt.Errorf("%w: element is not an object", ErrMissingTimestamp),
			})
			continue
		}
		raw, ok := obj["timestamp"]
		if !ok {
			report.Skipped = append(report.Skipped, Diagnostic{Index: idx, Err: ErrMissingTimestamp})
			continue
		}
		stamp, err := resolveTimestamp(raw)
		if err != nil {
			report.Skipped = append(report.Skipped, Diagnostic{Index: idx, Err: err})
			continue
		}

		sample := Sample{Kind: stamp.kind, Display: stamp.display}
		if stamp.kind == KindAbsolute {
			if !originSet {
				origin = stamp
				originSet = true
			}
			sample.Elapsed = stamp.instant.Sub(origin.instant).Seconds()
		} else {
			sample.Elapsed = stamp.elapsed
		}

		if speed := numericField(obj, "speed"); speed != nil {
			converted := units.Convert(*speed, opts.SourceUnit, opts.TargetUnit)
			sample.Speed = &converted
		}
		sample.Latitude = numericField(obj, "latitude")
		sample.Longitude = numericField(obj, "longitude")

		report.Samples = append(report.Samples, sample)
	}
	return report, nil
}

// documentElements unwraps the accepted document shapes into the raw element
// list. Numbers are kept as json.Number so the timestamp dispatch can tell
// numeric values apart from numeric strings.
func documentElements(data []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformedDocument)
	}

	switch doc := root.(type) {
	case []any:
		return doc, nil
	case map[string]any:
		for _, key := range wrapperKeys {
			if list, ok := doc[key].([]any); ok {
				return list, nil
			}
		}
		return nil, fmt.Errorf("%w: object carries none of %s as an array", ErrMalformedDocument, strings.Join(wrapperKeys, "/"))
	default:
		return nil, fmt.Errorf("%w: expected array or wrapper object, got %T", ErrMalformedDocument, root)
	}
}

// numericField reads an optional numeric element field. Numeric strings are
// coerced because GPS loggers frequently quote their values; anything else
// counts as unknown, never as an error.
func numericField(obj map[string]any, key string) *float64 {
	value, ok := obj[key]
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	default:
		return nil
	}
}
