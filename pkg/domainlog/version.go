package domainlog

import (
	"fmt"

	"github.com/bft-labs/domainlog/pkg/cache"
	"github.com/bft-labs/domainlog/pkg/event"
	"github.com/bft-labs/domainlog/pkg/log"
	"github.com/bft-labs/domainlog/pkg/resolve"
)

// Version information for the domainlog module.
const (
	// Version is the current version of the domainlog module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)

// validateModuleVersions checks that all module versions are compatible.
// Returns an error if any module version is below its minimum compatible version.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"cache":   {cache.Version, cache.MinCompatibleVersion},
		"event":   {event.Version, event.MinCompatibleVersion},
		"resolve": {resolve.Version, resolve.MinCompatibleVersion},
		"log":     {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}

	return nil
}

// isVersionCompatible checks if version >= minVersion using semantic versioning.
// Assumes versions are in format "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
