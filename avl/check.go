// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"
)

// CheckUp - check the up pointers for consistency
func (tree *Tree) CheckUp() bool {
	return checkup(tree.root, nil)
}

// internal: consistency checker
func checkup(p *Node, up *Node) bool {
	if nil == p {
		return true
	}
	if p.up != up {
		fmt.Printf("fail at node: %v   actual: %v  expected: %v\n", p.key, p.up, up)
		return false
	}
	if !checkup(p.left, p) {
		return false
	}
	return checkup(p.right, p)
}

// CheckCounts - check the sub-tree node counts for consistency
func (tree *Tree) CheckCounts() bool {
	n, ok := checkcounts(tree.root)
	return ok && n == tree.count
}

// internal: count checker
func checkcounts(p *Node) (int, bool) {
	if nil == p {
		return 0, true
	}
	l, okLeft := checkcounts(p.left)
	r, okRight := checkcounts(p.right)
	if !okLeft || !okRight || l != p.leftNodes || r != p.rightNodes {
		fmt.Printf("fail at node: %v   left: %d  expected: %d   right: %d  expected: %d\n",
			p.key, p.leftNodes, l, p.rightNodes, r)
		return 0, false
	}
	return l + r + 1, true
}
