package request_models

type TagSpecRequest struct {
	Topic       string `json:"topic" binding:"required"`
	Orientation string `json:"orientation" binding:"required"`
}

type PlaceSpecRequest struct {
	// ID is only honored when rescheduling a day; leave empty for new places.
	ID        string  `json:"id"`
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address"`
	Category  string  `json:"category" binding:"required"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Link      string  `json:"link"`
}

type CreateJourneyRequest struct {
	Name      string           `json:"name" binding:"required"`
	StartDate int64            `json:"start_date" binding:"required"`
	EndDate   int64            `json:"end_date" binding:"required"`
	ThemePath string           `json:"theme_path"`
	Tags      []TagSpecRequest `json:"tags"`
}

type AddParticipantRequest struct {
	JourneyID string `json:"journey_id" binding:"required,uuid4"`
}

type RemoveParticipantRequest struct {
	JourneyID string `json:"journey_id" binding:"required,uuid4"`
	// UserID defaults to the authenticated user when empty.
	UserID string `json:"user_id"`
}

type SetTagsRequest struct {
	JourneyID string           `json:"journey_id" binding:"required,uuid4"`
	Tags      []TagSpecRequest `json:"tags" binding:"required"`
}

type AddPikmiRequest struct {
	JourneyID string           `json:"journey_id" binding:"required,uuid4"`
	Place     PlaceSpecRequest `json:"place" binding:"required"`
}

type LikePikmiRequest struct {
	JourneyID string `json:"journey_id" binding:"required,uuid4"`
	PikmiID   string `json:"pikmi_id" binding:"required"`
}

type ScheduleDayRequest struct {
	JourneyID string `json:"journey_id" binding:"required,uuid4"`
	// Pointer so day zero survives the required check.
	DayIndex *int               `json:"day_index" binding:"required"`
	Places   []PlaceSpecRequest `json:"places"`
}
