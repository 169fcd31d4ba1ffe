package scoring

import "sync"

// MaxConcurrentScores bounds the worker count for batch scoring. Scoring
// is CPU-only, so a small pool is plenty.
const MaxConcurrentScores = 8

// ScoreBatch scores every lead against the same ICP. Invocations are
// independent, so leads are scored concurrently with a semaphore bounding
// the worker count. The result slice preserves input order.
func (e *Engine) ScoreBatch(leads []Lead, icp *ICP) []LeadScore {
	if len(leads) == 0 {
		return []LeadScore{}
	}

	results := make([]LeadScore, len(leads))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, MaxConcurrentScores)

	for i, lead := range leads {
		wg.Add(1)
		go func(index int, l Lead) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[index] = e.ScoreLead(l, icp)
		}(i, lead)
	}

	wg.Wait()
	return results
}
