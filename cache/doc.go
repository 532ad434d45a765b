// Package cache provides response caching for deterministic LLM provider
// calls. Identical requests against the same provider operation reuse the
// stored response instead of spending rate limit budget. Sampled requests
// (temperature above zero) and streaming requests are never cached.
package cache
