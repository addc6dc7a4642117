package renderer

import "github.com/loomui/loom/vnode"

// PatchKeyedChildren implements spec §4.4.5's five-phase keyed diff:
// sync-prefix, sync-suffix, pure-add, pure-remove, and an unknown-middle
// pass using a longest-increasing-subsequence computation to minimize
// `move` operations. No pack repo implements this algorithm (checked
// against both the teacher and the rest of the retrieval pack); this is
// built directly from spec's prose and boundary scenario 3/6 (§8.3),
// which this code's own tests reproduce.
func (o *Options[N, E]) PatchKeyedChildren(c1, c2 []*vnode.Node, container E, parentAnchor N, parent any) {
	i := 0
	e1 := len(c1) - 1
	e2 := len(c2) - 1

	// 1. Sync prefix.
	for i <= e1 && i <= e2 && vnode.SameType(c1[i], c2[i]) {
		o.Patch(c1[i], c2[i], container, zeroNode[N](), parent)
		i++
	}

	// 2. Sync suffix.
	for i <= e1 && i <= e2 && vnode.SameType(c1[e1], c2[e2]) {
		o.Patch(c1[e1], c2[e2], container, zeroNode[N](), parent)
		e1--
		e2--
	}

	// 3. Pure add.
	if i > e1 {
		if i <= e2 {
			nextPos := e2 + 1
			var anchor N
			if nextPos < len(c2) {
				anchor = asHandle[N](c2[nextPos].El)
			} else {
				anchor = parentAnchor
			}
			for ; i <= e2; i++ {
				o.Patch(nil, c2[i], container, anchor, parent)
			}
		}
		return
	}

	// 4. Pure remove.
	if i > e2 {
		for ; i <= e1; i++ {
			o.Unmount(c1[i])
		}
		return
	}

	// 5. Unknown middle.
	s1, s2 := i, i
	keyToNewIndex := map[any]int{}
	for j := s2; j <= e2; j++ {
		if c2[j].Key == nil {
			continue
		}
		if _, dup := keyToNewIndex[c2[j].Key]; dup {
			o.warn("renderer: duplicate key in keyed children, last wins")
		}
		keyToNewIndex[c2[j].Key] = j
	}

	toBePatched := e2 - s2 + 1
	newIndexToOldIndex := make([]int, toBePatched) // 0 == no old counterpart; else oldIndex+1
	moved := false
	maxNewIndexSoFar := -1
	patched := 0

	for j := s1; j <= e1; j++ {
		old := c1[j]
		if patched >= toBePatched {
			o.Unmount(old)
			continue
		}
		newIndex, found := findNewIndex(old, c2, s2, e2, keyToNewIndex)
		if !found {
			o.Unmount(old)
			continue
		}
		newIndexToOldIndex[newIndex-s2] = j + 1
		if newIndex >= maxNewIndexSoFar {
			maxNewIndexSoFar = newIndex
		} else {
			moved = true
		}
		o.Patch(old, c2[newIndex], container, zeroNode[N](), parent)
		patched++
	}

	var lisSet map[int]bool
	if moved {
		lis := longestIncreasingSubsequence(newIndexToOldIndex)
		lisSet = make(map[int]bool, len(lis))
		for _, idx := range lis {
			lisSet[idx] = true
		}
	}

	// Traverse in reverse so a just-processed new child is a valid anchor.
	for j := toBePatched - 1; j >= 0; j-- {
		newIndex := s2 + j
		var anchor N
		if newIndex+1 < len(c2) {
			anchor = asHandle[N](c2[newIndex+1].El)
		} else {
			anchor = parentAnchor
		}
		if newIndexToOldIndex[j] == 0 {
			o.Patch(nil, c2[newIndex], container, anchor, parent)
		} else if moved && !lisSet[j] {
			o.move(c2[newIndex], container, anchor)
		}
	}
}

func findNewIndex(old *vnode.Node, c2 []*vnode.Node, s2, e2 int, keyToNewIndex map[any]int) (int, bool) {
	if old.Key != nil {
		idx, ok := keyToNewIndex[old.Key]
		return idx, ok
	}
	for j := s2; j <= e2; j++ {
		if c2[j].Key == nil && vnode.SameType(old, c2[j]) {
			return j, true
		}
	}
	return 0, false
}

// move relocates an already-mounted node's host handle to a new position,
// without re-patching its content.
func (o *Options[N, E]) move(n *vnode.Node, container E, anchor N) {
	switch n.Kind {
	case vnode.KindFragment:
		for _, c := range n.Children.Array {
			o.move(c, container, anchor)
		}
	default:
		h := asHandle[N](n.El)
		if !o.Backend.IsNil(h) {
			o.Backend.Insert(h, container, anchor)
		}
	}
}

// longestIncreasingSubsequence returns the indices (into arr) of one
// longest strictly-increasing subsequence, treating 0 entries as absent
// (the sentinel spec's newIndexToOldIndex uses for "no old counterpart") —
// O(n log n) patience-sort with parent pointers, per spec §4.4.5.
func longestIncreasingSubsequence(arr []int) []int {
	n := len(arr)
	if n == 0 {
		return nil
	}
	result := make([]int, 0, n)   // result[k] = index into arr of the tail of an increasing run of length k+1
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}

	for i := 0; i < n; i++ {
		v := arr[i]
		if v == 0 {
			continue
		}
		if len(result) == 0 || arr[result[len(result)-1]] < v {
			if len(result) > 0 {
				parent[i] = result[len(result)-1]
			}
			result = append(result, i)
			continue
		}
		// binary search for the first element in result whose value >= v
		lo, hi := 0, len(result)-1
		for lo < hi {
			mid := (lo + hi) / 2
			if arr[result[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if arr[result[lo]] >= v {
			if lo > 0 {
				parent[i] = result[lo-1]
			}
			result[lo] = i
		}
	}

	seq := make([]int, len(result))
	k := len(result) - 1
	idx := result[len(result)-1]
	for k >= 0 {
		seq[k] = idx
		idx = parent[idx]
		k--
	}
	return seq
}
