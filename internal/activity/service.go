package activity

import (
	"encoding/json"

	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.ActivityAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// jsonb columns want the JSON literal "null", not an empty string
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.Activity{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return errors.Wrap(err, "could not write activity log")
	}
	return nil
}

// Record is WriteLog for callers that treat the trail as best-effort:
// the mutation has already succeeded, so a failed log entry is reported
// but never fails the request.
func Record(opts LogOptions) {
	if err := WriteLog(opts); err != nil {
		log.WithError(err).Warn("activity log entry dropped")
	}
}
