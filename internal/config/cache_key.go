package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AuthRateKey returns the counter key for a client's auth requests within one window.
func (r *CacheKeyStruct) AuthRateKey(clientIP string, window int64) string {
	return fmt.Sprintf("ratelimit:auth:%s:%d", clientIP, window)
}

var CacheKey = NewCacheKeyStruct()
