package wavelettrie

import "github.com/uber-go/tally"

type trieMetrics struct {
	inserts             tally.Counter
	deletes             tally.Counter
	splits              tally.Counter
	merges              tally.Counter
	insertOutOfRange    tally.Counter
	insertNotPrefixFree tally.Counter
	deleteOutOfRange    tally.Counter
	size                tally.Gauge
}

func newTrieMetrics(scope tally.Scope) trieMetrics {
	reason := func(r string) tally.Scope {
		return scope.Tagged(map[string]string{"reason": r})
	}
	return trieMetrics{
		inserts:             scope.Counter("inserts"),
		deletes:             scope.Counter("deletes"),
		splits:              scope.Counter("splits"),
		merges:              scope.Counter("merges"),
		insertOutOfRange:    reason("out-of-range").Counter("insert-errors"),
		insertNotPrefixFree: reason("not-prefix-free").Counter("insert-errors"),
		deleteOutOfRange:    reason("out-of-range").Counter("delete-errors"),
		size:                scope.Gauge("size"),
	}
}
