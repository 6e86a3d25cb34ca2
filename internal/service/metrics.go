package service

import "access-review/internal/domain"

// Metrics summarizes a record collection for the dashboard and reports.
func Metrics(records []domain.AccessRecord) domain.DatasetMetrics {
	users := make(map[string]struct{})
	units := make(map[string]struct{})
	titles := make(map[string]struct{})
	roles := make(map[string]struct{})
	ents := make(map[string]struct{})
	categories := make(map[string]struct{})
	accessGroups := make(map[string]struct{})
	titled := make(map[string]struct{})

	for _, rec := range records {
		users[rec.UserID] = struct{}{}
		units[rec.Unit] = struct{}{}
		roles[rec.Role] = struct{}{}
		ents[rec.Entitlement] = struct{}{}
		categories[rec.Category] = struct{}{}
		accessGroups[rec.AccessGroup] = struct{}{}
		if rec.HasTitle() {
			titles[rec.Title] = struct{}{}
			titled[rec.UserID] = struct{}{}
		}
	}

	return domain.DatasetMetrics{
		TotalRecords:       len(records),
		UniqueUsers:        len(users),
		UniqueUnits:        len(units),
		UniqueTitles:       len(titles),
		UniqueRoles:        len(roles),
		UniqueEntitlements: len(ents),
		UniqueCategories:   len(categories),
		UniqueAccessGroups: len(accessGroups),
		UsersWithoutTitle:  len(users) - len(titled),
	}
}
