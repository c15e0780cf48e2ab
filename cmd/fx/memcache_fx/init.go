package memcache_fx

import (
	"go.uber.org/fx"
	mem "tripweaver/pkg/memcache"
)

var Module = fx.Provide(provideCandidatePoolCache)

func provideCandidatePoolCache() mem.CandidatePoolCache {
	return mem.NewCandidatePoolCache()
}
