// Package subnet spreads subnet definitions across aggregation routers.
package subnet

import (
	"slices"

	"gonetsim/internal/random"
)

// Distribute assigns every name in active and inactive to exactly one router.
// Each pool is shuffled with rnd and then dealt out on its own: every router
// gets len(pool)/len(routers) names and the first len(pool)%len(routers)
// routers, in the order given, get one more. A router's list holds its active
// subnets followed by its inactive ones. The input slices are not modified.
func Distribute(routers, active, inactive []string, rnd random.Source) map[string][]string {
	assigned := make(map[string][]string, len(routers))
	for _, r := range routers {
		assigned[r] = []string{}
	}
	if len(routers) == 0 {
		return assigned
	}

	deal(assigned, routers, active, rnd)
	deal(assigned, routers, inactive, rnd)
	return assigned
}

func deal(assigned map[string][]string, routers, pool []string, rnd random.Source) {
	if len(pool) == 0 {
		return
	}

	shuffled := slices.Clone(pool)
	random.Shuffle(rnd, shuffled)

	perRouter := len(shuffled) / len(routers)
	extra := len(shuffled) % len(routers)

	next := 0
	for i, r := range routers {
		count := perRouter
		if i < extra {
			count++
		}
		assigned[r] = append(assigned[r], shuffled[next:next+count]...)
		next += count
	}
}
