package common

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

const cacheKeyArticles = "articles"

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// Invalidate drops every given key; missing keys are ignored.
func (c *Cache) Invalidate(keys ...string) {
	for _, key := range keys {
		c.Cache.Delete(key)
	}
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyArticle(id int) string {
	return "article:" + strconv.Itoa(id)
}

func CacheKeyArticles() string {
	return cacheKeyArticles
}
