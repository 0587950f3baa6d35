package cache

import "container/heap"

// TargetBytes is the byte budget eviction shrinks the cache down to.
// Derived from the configured MiB budget scaled by the encoder's
// screen depth, unless an exact byte budget overrides it. Without an
// active renderer a token 1 MiB keeps headless runs bounded.
func (self *Cache) TargetBytes() uint64 {
	if self.cfg.BudgetBytes != 0 { return self.cfg.BudgetBytes }
	depth := 0
	if self.enc != nil { depth = self.enc.ScreenDepth() }
	if depth <= 0 { return 1 << 20 }
	return uint64(self.cfg.BudgetMB) * uint64(depth) / 8 << 20
}

// Maintain runs the periodic cache upkeep: evict payloads in strict
// least-recently-used order while over budget, then renormalize the
// recency stamps if the counter is approaching wraparound. Call it
// once per frame or scheduler tick; between calls the cache may
// temporarily exceed its budget.
func (self *Cache) Maintain() {
	target := self.TargetBytes()
	if self.bytesUsed > target {
		self.evict(self.bytesUsed - target + self.cfg.EvictionSlack)
	}

	if self.lruCounter >= 0xC0000000 {
		self.log.Debug("renormalizing sprite recency stamps")
		for i := range self.entries {
			e := &self.entries[i]
			if e.data == nil { continue }
			if e.lru >= 0x80000000 {
				e.lru -= 0x80000000
			} else {
				e.lru = 0
			}
		}
		self.lruCounter -= 0x80000000
	}
}

type evictionCandidate struct {
	lru  uint32
	id   SpriteID
	size uint64
}

// Max-heap on the recency stamp, so the top is always the most
// recently used candidate and the first to be spared.
type candidateHeap []evictionCandidate

func (self candidateHeap) Len() int           { return len(self) }
func (self candidateHeap) Less(i, j int) bool { return self[i].lru > self[j].lru }
func (self candidateHeap) Swap(i, j int)      { self[i], self[j] = self[j], self[i] }
func (self *candidateHeap) Push(x any)        { *self = append(*self, x.(evictionCandidate)) }
func (self *candidateHeap) Pop() any {
	old := *self
	last := old[len(old)-1]
	*self = old[:len(old)-1]
	return last
}

// evict frees at least target bytes of decoded payloads, choosing
// exactly the least recently used evictable entries. Recolour tables
// and entries with nothing decoded are exempt. The candidate set is
// kept as a bounded heap instead of sorting the whole table.
func (self *Cache) evict(target uint64) {
	initialUsed := self.bytesUsed

	var candidates candidateHeap
	var candidateBytes uint64
	push := func(c evictionCandidate) {
		heap.Push(&candidates, c)
		candidateBytes += c.size
	}
	pop := func() {
		candidateBytes -= candidates[0].size
		heap.Pop(&candidates)
	}

	// First accumulate entries in table order until the candidate set
	// alone could satisfy the target.
	var id SpriteID
	for ; int(id) < len(self.entries); id++ {
		e := &self.entries[id]
		if e.typ == TypeRecolour || e.data == nil { continue }
		push(evictionCandidate{e.lru, id, uint64(len(e.data.Data))})
		if candidateBytes >= target { id++; break }
	}

	// The remaining entries can only displace the most recently used
	// candidate; whenever one does, shed candidates the set no longer
	// needs to cover the target.
	for ; int(id) < len(self.entries); id++ {
		e := &self.entries[id]
		if e.typ == TypeRecolour || e.data == nil { continue }
		if e.lru > candidates[0].lru { continue }
		push(evictionCandidate{e.lru, id, uint64(len(e.data.Data))})
		for len(candidates) > 1 && candidateBytes-candidates[0].size >= target {
			pop()
		}
	}

	for _, c := range candidates {
		self.clearEntryData(&self.entries[c.id])
	}
	self.log.Debug("evicted sprite payloads",
		"bytes", initialUsed-self.bytesUsed, "requested", target, "used", self.bytesUsed)
}
