// Package ratelimiter implements token bucket rate limiting.
//
// A Bucket holds up to Config.Capacity tokens per key and gains
// Config.RefillRate tokens every Config.RefillInterval. Each request takes
// one token; a request that finds the bucket empty is rejected and its
// Result reports when to retry.
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       60,
//		RefillRate:     1,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	res, err := limiter.Allow(ctx, clientIP)
//	if err != nil {
//		return err
//	}
//	if !res.Allowed() {
//		// reject, retry after res.RetryAfter()
//	}
//
// MemoryStore keeps buckets in process memory. Its Run method removes
// buckets idle for an hour and fits an errgroup:
//
//	eg.Go(store.Run(ctx))
package ratelimiter
