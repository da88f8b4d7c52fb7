package text

// editKind is the operation of a single edit-script entry
type editKind int

const (
	editEqual editKind = iota
	editInsert
	editDelete
)

// edit is one entry of an edit script transforming an old sequence into a
// new one. OldIndex/NewIndex are the positions in the old/new sequences at
// which the edit applies; value is the token itself (the old-side token for
// equal and delete, the new-side token for insert).
type edit[T any] struct {
	kind     editKind
	oldIndex int
	newIndex int
	value    T
}

// diffSequences returns an ordered edit script whose replay against a yields
// exactly b. It never fails: empty inputs produce all-insert, all-delete, or
// empty scripts.
//
// Small inputs get the exact Myers shortest-edit-script algorithm; inputs
// whose combined length exceeds maxExactTokens fall back to a greedy
// resynchronization scan that bounds cost at O(len(a)*resyncWindow). The
// fallback script is correct but not guaranteed minimal.
func diffSequences[T comparable](a, b []T) []edit[T] {
	if len(a)+len(b) <= maxExactTokens {
		return myersDiff(a, b)
	}
	return lookaheadDiff(a, b)
}

// myersDiff implements the classic Myers shortest-edit-script algorithm:
// for increasing edit distance d, track the furthest-reaching x on each
// diagonal k = x-y, extending greedily along equal-token runs, and snapshot
// the frontier at each d so the path can be recovered by backtracking.
func myersDiff[T comparable](a, b []T) []edit[T] {
	n, m := len(a), len(b)
	maxD := n + m
	if maxD == 0 {
		return nil
	}

	// frontier[offset+k] holds the furthest x reached on diagonal k.
	offset := maxD
	frontier := make([]int, 2*maxD+1)
	var snapshots [][]int

	for d := 0; d <= maxD; d++ {
		snap := make([]int, len(frontier))
		copy(snap, frontier)
		snapshots = append(snapshots, snap)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && frontier[offset+k-1] < frontier[offset+k+1]) {
				// Step down from the diagonal above (an insert); ties go to
				// the neighbor with the larger x, which keeps output
				// deterministic.
				x = frontier[offset+k+1]
			} else {
				// Step right from the diagonal below (a delete).
				x = frontier[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			frontier[offset+k] = x
			if x >= n && y >= m {
				return backtrack(a, b, snapshots, d)
			}
		}
	}

	// Unreachable: d = n+m always suffices.
	return backtrack(a, b, snapshots, maxD)
}

// backtrack recovers the edit script from the per-d frontier snapshots,
// walking from (len(a), len(b)) back to the origin and emitting edits in
// forward order.
func backtrack[T comparable](a, b []T, snapshots [][]int, lastD int) []edit[T] {
	offset := len(a) + len(b)
	x, y := len(a), len(b)
	var reversed []edit[T]

	for d := lastD; d >= 0 && (x > 0 || y > 0); d-- {
		frontier := snapshots[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && frontier[offset+k-1] < frontier[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := frontier[offset+prevK]
		prevY := prevX - prevK

		// Walk the equal-token run backwards.
		for x > prevX && y > prevY {
			reversed = append(reversed, edit[T]{kind: editEqual, oldIndex: x - 1, newIndex: y - 1, value: a[x-1]})
			x--
			y--
		}

		if d > 0 {
			if x == prevX {
				// y decreased with x unchanged: an insert.
				reversed = append(reversed, edit[T]{kind: editInsert, oldIndex: x, newIndex: prevY, value: b[prevY]})
			} else {
				reversed = append(reversed, edit[T]{kind: editDelete, oldIndex: prevX, newIndex: y, value: a[prevX]})
			}
		}
		x, y = prevX, prevY
	}

	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	return reversed
}

// lookaheadDiff is the bounded-cost heuristic path: match prefixes greedily
// and, on mismatch, search a fixed window on both sides for the next equal
// token. When neither side resynchronizes within the window, one delete and
// one insert are emitted and both cursors advance.
func lookaheadDiff[T comparable](a, b []T) []edit[T] {
	var edits []edit[T]
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		if a[i] == b[j] {
			edits = append(edits, edit[T]{kind: editEqual, oldIndex: i, newIndex: j, value: a[i]})
			i++
			j++
			continue
		}

		// Find the nearest resynchronization point within the window.
		nextInB := findAhead(b, j+1, a[i])
		nextInA := findAhead(a, i+1, b[j])

		switch {
		case nextInB != -1 && (nextInA == -1 || nextInB-j <= nextInA-i):
			for ; j < nextInB; j++ {
				edits = append(edits, edit[T]{kind: editInsert, oldIndex: i, newIndex: j, value: b[j]})
			}
		case nextInA != -1:
			for ; i < nextInA; i++ {
				edits = append(edits, edit[T]{kind: editDelete, oldIndex: i, newIndex: j, value: a[i]})
			}
		default:
			edits = append(edits, edit[T]{kind: editDelete, oldIndex: i, newIndex: j, value: a[i]})
			edits = append(edits, edit[T]{kind: editInsert, oldIndex: i + 1, newIndex: j, value: b[j]})
			i++
			j++
		}
	}

	for ; i < len(a); i++ {
		edits = append(edits, edit[T]{kind: editDelete, oldIndex: i, newIndex: j, value: a[i]})
	}
	for ; j < len(b); j++ {
		edits = append(edits, edit[T]{kind: editInsert, oldIndex: i, newIndex: j, value: b[j]})
	}
	return edits
}

// findAhead returns the index of the first occurrence of v in s within
// [from, from+resyncWindow), or -1.
func findAhead[T comparable](s []T, from int, v T) int {
	end := from + resyncWindow
	if end > len(s) {
		end = len(s)
	}
	for i := from; i < end; i++ {
		if s[i] == v {
			return i
		}
	}
	return -1
}
