// Package patch applies partial-update requests: a nil field keeps the
// stored value. Update structs list exactly the mutable fields of an
// entity, so unknown fields are rejected at the JSON layer.
package patch

import "time"

func String(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func Float(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func Int(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func Time(dst *time.Time, src *time.Time) {
	if src != nil {
		*dst = *src
	}
}

func Bool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
