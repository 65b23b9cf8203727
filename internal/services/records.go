package services

import (
	"time"

	"event-hub/models"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

func dateTimePtr(dt types.DateTime) *time.Time {
	if dt.IsZero() {
		return nil
	}
	t := dt.Time()
	return &t
}

func parseDatePtr(value string) *time.Time {
	if value == "" {
		return nil
	}
	dt, err := types.ParseDateTime(value)
	if err != nil || dt.IsZero() {
		return nil
	}
	t := dt.Time()
	return &t
}

// jsonFieldRaw returns the raw stored JSON of a record field.
func jsonFieldRaw(record *core.Record, key string) []byte {
	return []byte(record.GetString(key))
}

func eventFromRecord(record *core.Record) models.Event {
	var coordinators, staff []string
	_ = record.UnmarshalJSONField("coordinators", &coordinators)
	_ = record.UnmarshalJSONField("staff", &staff)

	return models.Event{
		ID:               record.Id,
		Name:             record.GetString("name"),
		Description:      record.GetString("description"),
		Caption:          record.GetString("caption"),
		StartDate:        dateTimePtr(record.GetDateTime("start_date")),
		EndDate:          dateTimePtr(record.GetDateTime("end_date")),
		ImageURL:         record.GetString("image_url"),
		Capacity:         record.GetInt("capacity"),
		RegisteredCount:  record.GetInt("registered_count"),
		RegistrationType: record.GetString("registration_type"),
		Coordinators:     coordinators,
		Staff:            staff,
	}
}

func accessRequestFromRecord(record *core.Record) models.AccessRequest {
	return models.AccessRequest{
		ID:          record.Id,
		AdminUserID: record.GetString("admin_user_id"),
		EventName:   record.GetString("event_name"),
		Status:      record.GetString("status"),
		RequestedAt: record.GetDateTime("created").Time(),
		DecidedAt:   dateTimePtr(record.GetDateTime("decided_at")),
	}
}

func profileFromRecord(record *core.Record) models.ParticipantProfile {
	return models.ParticipantProfile{
		ID:              record.Id,
		UserID:          record.GetString("user_id"),
		Name:            record.GetString("name"),
		Institution:     record.GetString("institution"),
		Department:      record.GetString("department"),
		RegistrationNo:  record.GetString("registration_no"),
		Year:            record.GetInt("year"),
		RegisteredCount: record.GetInt("registered_count"),
		WonCount:        record.GetInt("won_count"),
		WishlistCount:   record.GetInt("wishlist_count"),
	}
}

func wishlistEntryFromRecord(record *core.Record) models.WishlistEntry {
	return models.WishlistEntry{
		ID:        record.Id,
		EventID:   record.GetString("event"),
		UserID:    record.GetString("user_id"),
		CreatedAt: record.GetDateTime("created").Time(),
	}
}
