package mutation

import "slices"

// ReorderBefore returns ids with dragged moved to sit immediately before
// target. An empty target moves dragged to the end. The result is nil when
// the move is not possible or changes nothing.
func ReorderBefore(ids []string, dragged, target string) []string {
	if dragged == target {
		return nil
	}
	from := slices.Index(ids, dragged)
	if from < 0 {
		return nil
	}

	rest := make([]string, 0, len(ids))
	rest = append(rest, ids[:from]...)
	rest = append(rest, ids[from+1:]...)

	to := len(rest)
	if target != "" {
		to = slices.Index(rest, target)
		if to < 0 {
			return nil
		}
	}

	out := slices.Insert(rest, to, dragged)
	if slices.Equal(out, ids) {
		return nil
	}
	return out
}

// MoveUp returns the order with id swapped one place towards the front.
func MoveUp(ids []string, id string) []string {
	i := slices.Index(ids, id)
	if i <= 0 {
		return nil
	}
	return ReorderBefore(ids, id, ids[i-1])
}

// MoveDown returns the order with id swapped one place towards the back.
func MoveDown(ids []string, id string) []string {
	i := slices.Index(ids, id)
	if i < 0 || i >= len(ids)-1 {
		return nil
	}
	target := ""
	if i+2 < len(ids) {
		target = ids[i+2]
	}
	return ReorderBefore(ids, id, target)
}
