package model

// URLFunc turns a stored image name into the URL clients fetch it from.
type URLFunc func(path string) string

type ImageView struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// OrphanageView is the JSON shape of an orphanage. List and detail routes
// render the same view.
type OrphanageView struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	Latitude       float64     `json:"latitude"`
	Longitude      float64     `json:"longitude"`
	About          string      `json:"about"`
	Instructions   string      `json:"instructions"`
	OpeningHours   string      `json:"opening_hours"`
	OpenOnWeekends bool        `json:"open_on_weekends"`
	Images         []ImageView `json:"images"`
}

func RenderOrphanage(o *Orphanage, url URLFunc) OrphanageView {
	images := make([]ImageView, 0, len(o.Images))
	for _, image := range o.Images {
		images = append(images, ImageView{ID: image.ID, URL: url(image.Path)})
	}

	return OrphanageView{
		ID:             o.ID,
		Name:           o.Name,
		Latitude:       o.Latitude,
		Longitude:      o.Longitude,
		About:          o.About,
		Instructions:   o.Instructions,
		OpeningHours:   o.OpeningHours,
		OpenOnWeekends: o.OpenOnWeekends,
		Images:         images,
	}
}

// RenderOrphanages keeps the input order. An empty input renders as an
// empty JSON array, never null.
func RenderOrphanages(orphanages []Orphanage, url URLFunc) []OrphanageView {
	views := make([]OrphanageView, 0, len(orphanages))
	for i := range orphanages {
		views = append(views, RenderOrphanage(&orphanages[i], url))
	}
	return views
}
