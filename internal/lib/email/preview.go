package email

// PreviewData holds sample values for every template, keyed by template
// name, for local previews and template tests.
var PreviewData = map[Template]map[string]string{
	TemplateOrphanageCreated: OrphanageCreated{
		Name:           "Lar das meninas",
		OpeningHours:   "Das 8h ate as 18h",
		OpenOnWeekends: true,
		Latitude:       -27.2092052,
		Longitude:      -49.6401092,
		ImageCount:     2,
		DetailURL:      "http://localhost:3333/orphanages/1",
	}.templateData(),
}
