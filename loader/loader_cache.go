// Copyright (c) 2026 The Typical Authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package loader

import (
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sietse/typical/schema"
)

const DefaultCacheSize = 512

type cacheKey struct {
	path string
	sum  [sha256.Size]byte
}

// Cache holds parsed schemas keyed by canonical path and content digest, so
// repeated resolutions (as in watch mode) only re-parse files that changed.
// A Cache is safe for concurrent use.
type Cache struct {
	schemas *lru.Cache[cacheKey, *schema.Schema]
}

func NewCache(size int) (*Cache, error) {
	schemas, err := lru.New[cacheKey, *schema.Schema](size)
	if err != nil {
		return nil, fmt.Errorf("loader: new cache: %w", err)
	}
	return &Cache{schemas: schemas}, nil
}

func (c *Cache) get(path string, src []byte) (*schema.Schema, bool) {
	return c.schemas.Get(cacheKey{path, sha256.Sum256(src)})
}

func (c *Cache) add(path string, src []byte, parsed *schema.Schema) {
	c.schemas.Add(cacheKey{path, sha256.Sum256(src)}, parsed)
}

func (c *Cache) Len() int {
	return c.schemas.Len()
}

func (c *Cache) Purge() {
	c.schemas.Purge()
}
