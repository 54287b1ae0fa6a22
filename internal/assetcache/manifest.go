// Package assetcache keeps a versioned, offline copy of the app shell and
// serves it ahead of the network.
package assetcache

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"
)

// Manifest names a cache version and the resources it must hold. Changing the
// list or any resource's content requires a new Version.
type Manifest struct {
	Version string   `json:"version"`
	Entries []string `json:"entries"`
}

const DefaultVersion = "meu-plano-fit-v3"

var defaultEntries = []string{
	"/",
	"/index.html",
	"/index.tsx",
	"/manifest.json",
	"/types.ts",
	"/constants.ts",
	"/services/geminiService.ts",
	"/components/Header.tsx",
	"/components/WeightTracker.tsx",
	"/components/MealDashboard.tsx",
	"/components/ExerciseTracker.tsx",
	"/components/MotivationAndReminders.tsx",
	"/components/PwaInstallInstructions.tsx",
	"/App.tsx",
}

func DefaultManifest() Manifest {
	entries := make([]string, len(defaultEntries))
	copy(entries, defaultEntries)
	return Manifest{Version: DefaultVersion, Entries: entries}
}

// Digest hashes the version and entry list so a changed list can be spotted
// when the version was not bumped.
func (m Manifest) Digest() string {
	h := sha256.New()
	h.Write([]byte(m.Version))
	for _, e := range m.Entries {
		h.Write([]byte{0})
		h.Write([]byte(NormalizeResource(e)))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// NormalizeResource maps a request path to the key entries are stored under.
func NormalizeResource(resource string) string {
	resource = strings.TrimSpace(resource)
	if i := strings.IndexAny(resource, "?#"); i >= 0 {
		resource = resource[:i]
	}
	if resource == "" {
		return "/"
	}
	if !strings.HasPrefix(resource, "/") {
		resource = "/" + resource
	}
	return path.Clean(resource)
}
