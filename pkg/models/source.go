package models

import "sort"

// SourceID identifies one upstream job-board origin.
type SourceID string

// Library-backed sources are fetched through the batch scraping engine in a
// single call; direct sources each have their own public-API adapter.
const (
	SourceLinkedIn     SourceID = "linkedin"
	SourceIndeed       SourceID = "indeed"
	SourceZipRecruiter SourceID = "zip_recruiter"
	SourceGlassdoor    SourceID = "glassdoor"
	SourceGoogle       SourceID = "google"
	SourceBayt         SourceID = "bayt"
	SourceBDJobs       SourceID = "bdjobs"
	SourceNaukri       SourceID = "naukri"

	SourceRemoteOK  SourceID = "remoteok"
	SourceArbeitnow SourceID = "arbeitnow"
	SourceRemotive  SourceID = "remotive"
	SourceJobicy    SourceID = "jobicy"
)

// The classification tables are built once and never mutated.
var librarySources = map[SourceID]bool{
	SourceLinkedIn:     true,
	SourceIndeed:       true,
	SourceZipRecruiter: true,
	SourceGlassdoor:    true,
	SourceGoogle:       true,
	SourceBayt:         true,
	SourceBDJobs:       true,
	SourceNaukri:       true,
}

var directSources = map[SourceID]bool{
	SourceRemoteOK:  true,
	SourceArbeitnow: true,
	SourceRemotive:  true,
	SourceJobicy:    true,
}

// IsLibrarySource reports whether s is delegated to the batch scraping engine.
func IsLibrarySource(s SourceID) bool {
	return librarySources[s]
}

// IsDirectSource reports whether s is served by a dedicated API adapter.
func IsDirectSource(s SourceID) bool {
	return directSources[s]
}

// IsKnownSource reports whether s is a supported source of either class.
func IsKnownSource(s SourceID) bool {
	return librarySources[s] || directSources[s]
}

// KnownSources returns every supported source, sorted by name.
func KnownSources() []SourceID {
	all := make([]SourceID, 0, len(librarySources)+len(directSources))
	for s := range librarySources {
		all = append(all, s)
	}
	for s := range directSources {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return all
}
