package catalog

import (
	"fmt"
	"strconv"
)

const syncedIDPrefix = "synced-"

// Merge returns the authoritative projects, untouched and in order, followed
// by the synced projects whose title does not exactly match an authoritative
// title. Items without an id, and synced items whose id an earlier item
// already holds, get "synced-<n>", n being the item's position in the result
// (bumped past any id already in use).
func Merge(authoritative, synced []Project) []Project {
	titles := make(map[string]struct{}, len(authoritative))
	used := make(map[string]struct{}, len(authoritative)+len(synced))
	for _, p := range authoritative {
		titles[p.Title] = struct{}{}
		if p.ID != "" {
			used[p.ID] = struct{}{}
		}
	}

	merged := make([]Project, 0, len(authoritative)+len(synced))
	merged = append(merged, authoritative...)
	var needID []int
	for i, p := range authoritative {
		if p.ID == "" {
			needID = append(needID, i)
		}
	}
	for _, p := range synced {
		if _, dup := titles[p.Title]; dup {
			continue
		}
		if _, taken := used[p.ID]; p.ID == "" || taken {
			needID = append(needID, len(merged))
		} else {
			used[p.ID] = struct{}{}
		}
		merged = append(merged, p)
	}

	for _, i := range needID {
		n := i
		id := syncedIDPrefix + strconv.Itoa(n)
		for {
			if _, taken := used[id]; !taken {
				break
			}
			n++
			id = syncedIDPrefix + strconv.Itoa(n)
		}
		merged[i].ID = id
		used[id] = struct{}{}
	}

	return merged
}

// FormatRating renders the rating badge; no ratings means no badge.
func FormatRating(avg float64, count int) string {
	if count == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f (%d)", avg, count)
}
