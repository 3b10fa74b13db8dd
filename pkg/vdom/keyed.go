package vdom

// patchKeyedChildren reconciles c1 into c2 with the fewest moves. Nodes
// between the common prefix and suffix are matched by key; only those that
// are not part of the longest increasing run of surviving old positions are
// moved.
func (r *Renderer) patchKeyedChildren(c1, c2 []*VNode, container, parentAnchor Handle, parent *Instance) {
	i := 0
	e1 := len(c1) - 1
	e2 := len(c2) - 1

	// 1. common prefix
	for i <= e1 && i <= e2 {
		if !sameType(c1[i], c2[i]) {
			break
		}
		r.patch(c1[i], c2[i], container, parentAnchor, parent)
		i++
	}

	// 2. common suffix
	for i <= e1 && i <= e2 {
		if !sameType(c1[e1], c2[e2]) {
			break
		}
		r.patch(c1[e1], c2[e2], container, parentAnchor, parent)
		e1--
		e2--
	}

	// 3. old exhausted: mount what is left of the new list
	if i > e1 {
		if i <= e2 {
			anchor := anchorFrom(c2, e2+1, parentAnchor)
			for ; i <= e2; i++ {
				r.patch(nil, c2[i], container, anchor, parent)
			}
		}
		return
	}

	// 4. new exhausted: unmount what is left of the old list
	if i > e2 {
		for ; i <= e1; i++ {
			r.unmount(c1[i], true)
		}
		return
	}

	// 5. unknown sequence
	s1, s2 := i, i

	keyToNewIndex := make(map[any]int, e2-s2+1)
	for j := s2; j <= e2; j++ {
		if k := c2[j].Key; k != nil {
			keyToNewIndex[k] = j
		}
	}

	toBePatched := e2 - s2 + 1
	patched := 0
	moved := false
	maxNewIndexSoFar := 0

	// source[j] is the old index matched to new index s2+j, or -1 for a
	// node that has to be mounted.
	source := make([]int, toBePatched)
	for j := range source {
		source[j] = -1
	}

	for j := s1; j <= e1; j++ {
		prev := c1[j]
		if patched >= toBePatched {
			r.unmount(prev, true)
			continue
		}

		newIndex := -1
		if prev.Key != nil {
			if n, ok := keyToNewIndex[prev.Key]; ok && sameType(prev, c2[n]) {
				newIndex = n
			}
		} else {
			for k := s2; k <= e2; k++ {
				if source[k-s2] == -1 && c2[k].Key == nil && sameType(prev, c2[k]) {
					newIndex = k
					break
				}
			}
		}

		if newIndex == -1 {
			r.unmount(prev, true)
			continue
		}

		source[newIndex-s2] = j
		if newIndex >= maxNewIndexSoFar {
			maxNewIndexSoFar = newIndex
		} else {
			moved = true
		}
		r.patch(prev, c2[newIndex], container, parentAnchor, parent)
		patched++
	}

	var stable []int
	if moved {
		stable = LongestIncreasingSubsequence(source)
	}
	k := len(stable) - 1

	// Walk backwards so every anchor to the right is already in place.
	for j := toBePatched - 1; j >= 0; j-- {
		nextIndex := s2 + j
		next := c2[nextIndex]
		anchor := anchorFrom(c2, nextIndex+1, parentAnchor)

		switch {
		case source[j] == -1:
			r.patch(nil, next, container, anchor, parent)
		case moved:
			if k < 0 || j != stable[k] {
				r.move(next, container, anchor)
			} else {
				k--
			}
		}
	}
}

// patchUnkeyedChildren patches children position by position, then mounts
// or unmounts the tail.
func (r *Renderer) patchUnkeyedChildren(c1, c2 []*VNode, container, anchor Handle, parent *Instance) {
	common := min(len(c1), len(c2))
	for i := 0; i < common; i++ {
		r.patch(c1[i], c2[i], container, anchor, parent)
	}
	if len(c1) > len(c2) {
		for _, v := range c1[common:] {
			r.unmount(v, true)
		}
		return
	}
	for _, v := range c2[common:] {
		r.patch(nil, v, container, anchor, parent)
	}
}
