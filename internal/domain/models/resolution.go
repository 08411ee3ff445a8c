package models

import "fmt"

// ResolutionKind tags how a data key was answered.
type ResolutionKind int

const (
	KindNotFound ResolutionKind = iota
	KindIndicator
	KindSeries
	KindSeriesGroup
	KindIndicatorGroup
)

func (k ResolutionKind) String() string {
	switch k {
	case KindIndicator:
		return "indicator"
	case KindSeries:
		return "series"
	case KindSeriesGroup:
		return "series_group"
	case KindIndicatorGroup:
		return "indicator_group"
	default:
		return "not_found"
	}
}

func (k ResolutionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ResolutionKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "indicator":
		*k = KindIndicator
	case "series":
		*k = KindSeries
	case "series_group":
		*k = KindSeriesGroup
	case "indicator_group":
		*k = KindIndicatorGroup
	case "not_found":
		*k = KindNotFound
	default:
		return fmt.Errorf("unknown resolution kind %q", string(b))
	}
	return nil
}

// Resolution is the answer for one data key. Data holds, per Kind:
//   - KindIndicator: *IndicatorRecord
//   - KindSeries: []SeriesPoint
//   - KindSeriesGroup: map[string][]SeriesPoint
//   - KindIndicatorGroup: map[string]*IndicatorRecord
type Resolution struct {
	Kind ResolutionKind `json:"kind"`
	Key  string         `json:"key"`
	Data any            `json:"data"`
}

func (r Resolution) Found() bool { return r.Kind != KindNotFound }

// BatchResolution keeps every resolved key and lists the rest in request order.
type BatchResolution struct {
	Found    map[string]Resolution `json:"found"`
	NotFound []string              `json:"notFound"`
}
