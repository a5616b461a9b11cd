package table

import (
	"fmt"
	"strings"
)

// JoinKind selects the join variant.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
	SemiJoin
	AntiJoin
)

func (k JoinKind) String() string {
	switch k {
	case InnerJoin:
		return "inner"
	case LeftJoin:
		return "left"
	case RightJoin:
		return "right"
	case FullJoin:
		return "full"
	case SemiJoin:
		return "semi"
	default:
		return "anti"
	}
}

// JoinKey pairs a left column with the right column it must equal.
type JoinKey struct {
	Left  string
	Right string
}

// On joins on a column present under the same name on both sides.
func On(col string) JoinKey { return JoinKey{Left: col, Right: col} }

// OnColumns joins a left column against a differently named right column.
func OnColumns(left, right string) JoinKey { return JoinKey{Left: left, Right: right} }

// Join combines t (the left side) with right. Rows pair when every mapped
// key is non-missing and equal; a missing key never matches anything. With
// duplicate keys on either side the output is the pairwise cross product of
// the matching rows. When no keys are given, the single column name shared
// by both sides is used; zero or several shared names is ErrAmbiguousJoinKey.
//
// Output columns are left columns followed by right columns. A right key
// column mapped under the same name as its left counterpart is dropped;
// other name collisions are disambiguated with ".x" (left) and ".y" (right)
// suffixes. Semi and anti joins return left columns only and never
// duplicate a left row. Output order is left-row-major with right matches
// in right original order; right and full joins append unmatched right rows
// at the end, in right original order.
func (t *Table) Join(right *Table, kind JoinKind, keys ...JoinKey) (*Table, error) {
	if len(keys) == 0 {
		var err error
		keys, err = inferJoinKeys(t, right)
		if err != nil {
			return nil, err
		}
	}

	leftIdx := make([]int, len(keys))
	rightIdx := make([]int, len(keys))
	merged := make(map[string]bool) // right key columns dropped from the output
	for k, key := range keys {
		lj, err := t.colIndex(key.Left)
		if err != nil {
			return nil, fmt.Errorf("join key: %w", err)
		}
		rj, err := right.colIndex(key.Right)
		if err != nil {
			return nil, fmt.Errorf("join key: %w", err)
		}
		lk, rk := t.kinds[lj], right.kinds[rj]
		if lk != KindMissing && rk != KindMissing && lk != rk {
			return nil, fmt.Errorf("join key %q (%s) against %q (%s): %w", key.Left, lk, key.Right, rk, ErrTypeMismatch)
		}
		leftIdx[k] = lj
		rightIdx[k] = rj
		if key.Left == key.Right {
			merged[key.Right] = true
		}
	}

	// Index right rows by encoded key, skipping rows with a missing key cell.
	index := make(map[string][]int)
	for i, row := range right.rows {
		enc, ok := encodeJoinKey(row, rightIdx)
		if !ok {
			continue
		}
		index[enc] = append(index[enc], i)
	}

	if kind == SemiJoin || kind == AntiJoin {
		return t.filteringJoin(kind, index, leftIdx)
	}
	return t.combiningJoin(right, kind, index, leftIdx, rightIdx, merged, keys)
}

// inferJoinKeys resolves an omitted key mapping. Inference is deliberately
// strict: exactly one shared column name, anything else must be explicit.
func inferJoinKeys(left, right *Table) ([]JoinKey, error) {
	var shared []string
	onRight := make(map[string]bool, len(right.cols))
	for _, c := range right.cols {
		onRight[c] = true
	}
	for _, c := range left.cols {
		if onRight[c] {
			shared = append(shared, c)
		}
	}
	switch len(shared) {
	case 0:
		return nil, fmt.Errorf("no shared column names: %w", ErrAmbiguousJoinKey)
	case 1:
		return []JoinKey{On(shared[0])}, nil
	default:
		return nil, fmt.Errorf("columns %v are shared, specify the key mapping: %w", shared, ErrAmbiguousJoinKey)
	}
}

func encodeJoinKey(row []Value, idx []int) (string, bool) {
	var sb strings.Builder
	for _, j := range idx {
		if row[j].IsMissing() {
			return "", false
		}
		sb.WriteString(row[j].encode())
		sb.WriteByte(0x1f)
	}
	return sb.String(), true
}

// filteringJoin implements semi and anti joins: left columns only, each left
// row emitted at most once.
func (t *Table) filteringJoin(kind JoinKind, index map[string][]int, leftIdx []int) (*Table, error) {
	var kept [][]Value
	for _, row := range t.rows {
		enc, ok := encodeJoinKey(row, leftIdx)
		matched := ok && len(index[enc]) > 0
		if matched == (kind == SemiJoin) {
			kept = append(kept, row)
		}
	}
	return t.withRows(kept), nil
}

func (t *Table) combiningJoin(right *Table, kind JoinKind, index map[string][]int, leftIdx, rightIdx []int, merged map[string]bool, keys []JoinKey) (*Table, error) {
	// Right output columns: drop merged key columns, then disambiguate
	// remaining collisions with .x/.y suffixes.
	var rightCols []int
	for j := range right.cols {
		if !merged[right.cols[j]] {
			rightCols = append(rightCols, j)
		}
	}
	onLeft := make(map[string]bool, len(t.cols))
	for _, c := range t.cols {
		onLeft[c] = true
	}
	cols := make([]string, 0, len(t.cols)+len(rightCols))
	kinds := make([]Kind, 0, cap(cols))
	for j, c := range t.cols {
		name := c
		for _, rj := range rightCols {
			if right.cols[rj] == c {
				name = c + ".x"
				break
			}
		}
		cols = append(cols, name)
		kinds = append(kinds, t.kinds[j])
	}
	for _, rj := range rightCols {
		name := right.cols[rj]
		if onLeft[name] {
			name += ".y"
		}
		cols = append(cols, name)
		kinds = append(kinds, right.kinds[rj])
	}

	// Positions of merged key columns on the left, keyed by right column
	// index, so unmatched right rows can fill the shared key cells.
	mergedLeftPos := make(map[int]int)
	for k, key := range keys {
		if key.Left == key.Right {
			mergedLeftPos[rightIdx[k]] = leftIdx[k]
		}
	}

	pair := func(lrow, rrow []Value) []Value {
		out := make([]Value, 0, len(cols))
		out = append(out, lrow...)
		for _, rj := range rightCols {
			out = append(out, rrow[rj])
		}
		return out
	}

	var rows [][]Value
	rightMatched := make([]bool, len(right.rows))
	for _, lrow := range t.rows {
		enc, ok := encodeJoinKey(lrow, leftIdx)
		var matches []int
		if ok {
			matches = index[enc]
		}
		for _, ri := range matches {
			rightMatched[ri] = true
			rows = append(rows, pair(lrow, right.rows[ri]))
		}
		if len(matches) == 0 && (kind == LeftJoin || kind == FullJoin) {
			rrow := make([]Value, len(right.cols))
			for j := range rrow {
				rrow[j] = Missing()
			}
			rows = append(rows, pair(lrow, rrow))
		}
	}
	if kind == RightJoin || kind == FullJoin {
		for ri, rrow := range right.rows {
			if rightMatched[ri] {
				continue
			}
			lrow := make([]Value, len(t.cols))
			for j := range lrow {
				lrow[j] = Missing()
			}
			for rj, lj := range mergedLeftPos {
				lrow[lj] = rrow[rj]
			}
			rows = append(rows, pair(lrow, rrow))
		}
	}

	out := &Table{cols: cols, kinds: kinds, rows: rows}
	// The left grouping annotation survives when its columns kept their names.
	for _, g := range t.groups {
		kept := false
		for _, c := range cols[:len(t.cols)] {
			if c == g {
				kept = true
				break
			}
		}
		if !kept {
			return out, nil
		}
	}
	out.groups = t.groups
	return out, nil
}
