package metrics

import "park-server/models"

// AttractionsInPeriod lists the distinct attraction names in first-seen order.
func AttractionsInPeriod(records []models.Record) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range records {
		if r.Attraction == "" {
			continue
		}
		if _, ok := seen[r.Attraction]; ok {
			continue
		}
		seen[r.Attraction] = struct{}{}
		names = append(names, r.Attraction)
	}
	return names
}

// DefaultAttraction picks preferred when it is listed, else the first name.
func DefaultAttraction(names []string, preferred string) string {
	for _, n := range names {
		if n == preferred {
			return n
		}
	}
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
