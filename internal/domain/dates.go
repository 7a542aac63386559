package domain

import "time"

// MemeJour reports whether a and b fall on the same calendar day.
func MemeJour(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MemeMois reports whether a and b fall in the same calendar month.
func MemeMois(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// RetirerID removes id from a back-reference list, preserving order.
func RetirerID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ContientID reports whether id is present in a back-reference list.
func ContientID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
