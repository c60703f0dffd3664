package cache

import (
	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

// ResponseCache keeps rendered JSON payloads of the public content
// endpoints so repeated reads skip the database.
type ResponseCache struct {
	cache      *freecache.Cache
	ttlSeconds int
}

func NewResponseCache(ttlSeconds int) *ResponseCache {
	return &ResponseCache{
		cache:      freecache.NewCache(10 * megabyte),
		ttlSeconds: ttlSeconds,
	}
}

func (rc *ResponseCache) Get(key string) ([]byte, bool) {
	value, err := rc.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return value, true
}

func (rc *ResponseCache) Set(key string, value []byte) {
	if err := rc.cache.Set([]byte(key), value, rc.ttlSeconds); err != nil {
		log.Errorf("response cache: failed to set %s: %s", key, err)
	}
}

func (rc *ResponseCache) Invalidate(key string) {
	rc.cache.Del([]byte(key))
}
