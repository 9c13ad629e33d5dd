package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/happy/internal/model"
	"github.com/hibiken/asynq"
)

const (
	// TaskOrphanageCreated is enqueued after an orphanage is stored.
	TaskOrphanageCreated = "orphanage:created"
)

// OrphanageCreatedPayload is the JSON body of TaskOrphanageCreated. It
// carries everything the notification needs so the worker does not read
// the database.
type OrphanageCreatedPayload struct {
	OrphanageID    int64   `json:"orphanage_id"`
	Name           string  `json:"name"`
	OpeningHours   string  `json:"opening_hours"`
	OpenOnWeekends bool    `json:"open_on_weekends"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	ImageCount     int     `json:"image_count"`
}

// NewOrphanageCreatedTask retries up to 3 times on the default queue.
func NewOrphanageCreatedTask(o *model.Orphanage) (*asynq.Task, error) {
	payload, err := json.Marshal(OrphanageCreatedPayload{
		OrphanageID:    o.ID,
		Name:           o.Name,
		OpeningHours:   o.OpeningHours,
		OpenOnWeekends: o.OpenOnWeekends,
		Latitude:       o.Latitude,
		Longitude:      o.Longitude,
		ImageCount:     len(o.Images),
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskOrphanageCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
