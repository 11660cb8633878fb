// Package versions provides semantic-version filtering and ordering for
// release tag names.
//
// Tag names commonly carry a leading "v" ("v1.2.3"); both bare and
// v-prefixed forms are accepted. Strings that don't parse as semantic
// versions are dropped by [Filter] rather than reported as errors, since
// repositories routinely mix release tags with markers like "nightly" or
// "deploy-2024".
package versions

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// Filter returns the candidates that parse as semantic versions, in input
// order. Prerelease versions (1.2.3-beta.1) are kept only when
// includePrereleases is true.
func Filter(candidates []string, includePrereleases bool) []string {
	var out []string
	for _, c := range candidates {
		v, err := semver.NewVersion(c)
		if err != nil {
			continue
		}
		if v.Prerelease() != "" && !includePrereleases {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Sort orders candidates by semantic version, ascending, and returns a new
// slice. With reverse set, the highest version comes first. Candidates that
// don't parse sort after all valid versions; run [Filter] first if they
// should be excluded entirely. Equal versions keep their input order.
func Sort(candidates []string, reverse bool) []string {
	out := make([]string, len(candidates))
	copy(out, candidates)

	parsed := make(map[string]*semver.Version, len(out))
	for _, c := range out {
		if v, err := semver.NewVersion(c); err == nil {
			parsed[c] = v
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		vi, vj := parsed[out[i]], parsed[out[j]]
		switch {
		case vi == nil:
			return false
		case vj == nil:
			return true
		}
		if reverse {
			return vi.GreaterThan(vj)
		}
		return vi.LessThan(vj)
	})
	return out
}
