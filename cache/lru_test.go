package cache

import "testing"

import "gfxcache/asset"

func registerNormals(t *testing.T, cache *Cache, file *asset.File, ids ...SpriteID) {
	t.Helper()
	for _, id := range ids {
		if err := cache.Register(id, file, int64(id)*8, TypeNormal, uint32(id), 0, 0); err != nil {
			t.Fatal(err)
		}
	}
}

func TestTargetBytes(t *testing.T) {
	ld := newStubLoader(4, 4)
	cache, _ := newTestCache(t, ld, &fixedEncoder{depth: 32, size: 100}, Config{BudgetMB: 4})
	if got := cache.TargetBytes(); got != 4*32/8<<20 {
		t.Fatalf("expected depth-scaled budget, got %d", got)
	}

	cache, _ = newTestCache(t, ld, &fixedEncoder{depth: 0, size: 100}, Config{BudgetMB: 4})
	if got := cache.TargetBytes(); got != 1<<20 {
		t.Fatalf("expected 1 MiB headless budget, got %d", got)
	}

	cache, _ = newTestCache(t, ld, &fixedEncoder{depth: 32, size: 100}, Config{BudgetMB: 4, BudgetBytes: 999})
	if got := cache.TargetBytes(); got != 999 {
		t.Fatalf("expected exact override, got %d", got)
	}
}

func TestEvictionTakesExactlyTheOldest(t *testing.T) {
	ld := newStubLoader(4, 4)
	cfg := Config{BudgetBytes: 1000, MissingSprite: 1}
	cache, file := newTestCache(t, ld, &fixedEncoder{depth: 8, size: 400}, cfg)
	registerNormals(t, cache, file, 1, 5, 6, 7)

	_ = cache.GetRaw(5, TypeNormal)
	_ = cache.GetRaw(6, TypeNormal)
	_ = cache.GetRaw(7, TypeNormal)
	if cache.BytesUsed() != 1200 { t.Fatalf("unexpected usage %d", cache.BytesUsed()) }

	cache.Maintain()
	if cache.BytesUsed() != 800 { t.Fatalf("expected 800 bytes after eviction, got %d", cache.BytesUsed()) }
	if cache.entries[5].data != nil { t.Fatal("oldest payload survived") }
	if cache.entries[6].data == nil || cache.entries[7].data == nil {
		t.Fatal("eviction went past the deficit")
	}
}

func TestEvictionFollowsRecency(t *testing.T) {
	ld := newStubLoader(4, 4)
	cfg := Config{BudgetBytes: 400, MissingSprite: 1}
	cache, file := newTestCache(t, ld, &fixedEncoder{depth: 8, size: 400}, cfg)
	registerNormals(t, cache, file, 1, 5, 6, 7)

	_ = cache.GetRaw(5, TypeNormal)
	_ = cache.GetRaw(6, TypeNormal)
	_ = cache.GetRaw(7, TypeNormal)
	_ = cache.GetRaw(5, TypeNormal) // 5 is now the most recent

	cache.Maintain()
	if cache.entries[5].data == nil { t.Fatal("most recent payload evicted") }
	if cache.entries[6].data != nil || cache.entries[7].data != nil {
		t.Fatal("older payloads survived a full deficit")
	}
	if cache.BytesUsed() != 400 { t.Fatalf("unexpected usage %d", cache.BytesUsed()) }
}

func TestEvictionSlack(t *testing.T) {
	ld := newStubLoader(4, 4)
	cfg := Config{BudgetBytes: 1000, EvictionSlack: 300, MissingSprite: 1}
	cache, file := newTestCache(t, ld, &fixedEncoder{depth: 8, size: 400}, cfg)
	registerNormals(t, cache, file, 1, 5, 6, 7)

	_ = cache.GetRaw(5, TypeNormal)
	_ = cache.GetRaw(6, TypeNormal)
	_ = cache.GetRaw(7, TypeNormal)

	// deficit 200 plus 300 slack: two payloads must go
	cache.Maintain()
	if cache.BytesUsed() != 400 { t.Fatalf("expected 400 bytes, got %d", cache.BytesUsed()) }
	if cache.entries[7].data == nil { t.Fatal("newest payload evicted") }
}

func TestRecolourExemptFromEviction(t *testing.T) {
	ld := newStubLoader(4, 4)
	cfg := Config{BudgetBytes: 100, MissingSprite: 1, IdentityRecolour: 2}
	cache, file := newTestCache(t, ld, &fixedEncoder{depth: 8, size: 400}, cfg)
	if err := cache.Register(2, file, 16, TypeRecolour, 2, 257, 0); err != nil { t.Fatal(err) }
	registerNormals(t, cache, file, 1, 5)
	_ = cache.GetRaw(5, TypeNormal)

	cache.Maintain()
	if cache.entries[5].data != nil { t.Fatal("normal payload survived a tiny budget") }
	if cache.entries[2].data == nil { t.Fatal("recolour table evicted") }
	if cache.BytesUsed() != recolourLen { t.Fatalf("unexpected usage %d", cache.BytesUsed()) }
}

func TestRecencyRenormalization(t *testing.T) {
	ld := newStubLoader(4, 4)
	cache, file := newTestCache(t, ld, &fixedEncoder{depth: 8, size: 100}, testConfig())
	registerNormals(t, cache, file, 1, 5, 6)
	_ = cache.GetRaw(5, TypeNormal)
	_ = cache.GetRaw(6, TypeNormal)

	cache.lruCounter = 0xC0000005
	cache.entries[5].lru = 0x80000007
	cache.entries[6].lru = 5

	cache.Maintain()
	if cache.lruCounter != 0x40000005 { t.Fatalf("counter not renormalized: %#x", cache.lruCounter) }
	if cache.entries[5].lru != 7 { t.Fatalf("high stamp not shifted: %#x", cache.entries[5].lru) }
	if cache.entries[6].lru != 0 { t.Fatalf("low stamp not floored: %d", cache.entries[6].lru) }

	// relative order is preserved for future evictions
	if cache.entries[6].lru >= cache.entries[5].lru {
		t.Fatal("renormalization inverted the recency order")
	}
}
