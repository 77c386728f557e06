package editor

import "fmt"

// AppendRow returns rows with row appended.
func AppendRow[R any](rows []R, row R) []R {
	return append(rows, row)
}

// RemoveRow returns rows without the element at i. The result is never nil.
func RemoveRow[R any](rows []R, i int) ([]R, error) {
	if i < 0 || i >= len(rows) {
		return rows, fmt.Errorf("%w: %d of %d", ErrRowIndex, i, len(rows))
	}
	out := make([]R, 0, len(rows)-1)
	out = append(out, rows[:i]...)
	return append(out, rows[i+1:]...), nil
}

// MoveRow swaps the row at i with its neighbour at i+delta.
func MoveRow[R any](rows []R, i, delta int) ([]R, error) {
	if delta != -1 && delta != 1 {
		return rows, ErrInvalidDelta
	}
	j := i + delta
	if i < 0 || i >= len(rows) || j < 0 || j >= len(rows) {
		return rows, fmt.Errorf("%w: %d%+d of %d", ErrRowIndex, i, delta, len(rows))
	}
	out := append([]R(nil), rows...)
	out[i], out[j] = out[j], out[i]
	return out, nil
}

// UpdateRow applies update to the row at i in place.
func UpdateRow[R any](rows []R, i int, update func(*R) error) error {
	if i < 0 || i >= len(rows) {
		return fmt.Errorf("%w: %d of %d", ErrRowIndex, i, len(rows))
	}
	return update(&rows[i])
}
