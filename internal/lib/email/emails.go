package email

import "strconv"

// OrphanageCreated is the content of the registration notice.
type OrphanageCreated struct {
	Name           string
	OpeningHours   string
	OpenOnWeekends bool
	Latitude       float64
	Longitude      float64
	ImageCount     int
	DetailURL      string
}

// SendOrphanageCreatedEmail tells the maintainers at to that a new
// orphanage was registered.
func (c *Client) SendOrphanageCreatedEmail(to string, o OrphanageCreated) error {
	return c.SendEmail(
		to,
		"New orphanage registered: "+o.Name,
		TemplateOrphanageCreated,
		o.templateData(),
	)
}

func (o OrphanageCreated) templateData() map[string]string {
	weekends := "No"
	if o.OpenOnWeekends {
		weekends = "Yes"
	}

	return map[string]string{
		"OrphanageName":  o.Name,
		"OpeningHours":   o.OpeningHours,
		"OpenOnWeekends": weekends,
		"Latitude":       strconv.FormatFloat(o.Latitude, 'f', -1, 64),
		"Longitude":      strconv.FormatFloat(o.Longitude, 'f', -1, 64),
		"ImageCount":     strconv.Itoa(o.ImageCount),
		"DetailURL":      o.DetailURL,
	}
}
