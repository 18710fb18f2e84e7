package aggregates

import (
	"math"
	"unicode/utf8"
)

// Structural limits of a journey. These mirror the product rules, not storage
// constraints: the store persists whatever the aggregate hands it.
const (
	MaxJourneyName = 10
	MaxTagTopic    = 6

	MaxParticipants = 8
	MaxTags         = 24
	MaxPikmis       = 100
	MaxPikisPerDay  = 50
	MaxJourneyDays  = 366

	MaxJourneysPerUser = 10

	SecondsPerDay = 86400
)

// Service area bounding box. Coordinates are restricted to the home territory.
const (
	MinLongitude = 124.0
	MaxLongitude = 132.0
	MinLatitude  = 33.0
	MaxLatitude  = 43.0
)

// TripLengthDays converts an epoch-seconds window into whole trip days.
// A 3-day weekend (start Friday 00:00, end Monday 00:00) is 3 days.
func TripLengthDays(start, end int64) int {
	return int(math.Round(float64(end-start) / float64(SecondsPerDay)))
}

// ValidateTripLength rejects inverted windows and trips longer than a year.
func ValidateTripLength(start, end int64) error {
	if end < start {
		return InvalidTimeRangeError("ends before it starts")
	}
	if TripLengthDays(start, end) > MaxJourneyDays {
		return InvalidTimeRangeError("exceeds maximum journey length")
	}
	return nil
}

func ValidateJourneyName(name string) error {
	if utf8.RuneCountInString(name) > MaxJourneyName {
		return FieldTooLongError("name", MaxJourneyName)
	}
	return nil
}

func ValidateTagTopic(topic string) error {
	if utf8.RuneCountInString(topic) > MaxTagTopic {
		return FieldTooLongError("topic", MaxTagTopic)
	}
	return nil
}

func ValidateOrientation(value Orientation) error {
	switch value {
	case OrientationLike, OrientationDislike, OrientationNoMatter:
		return nil
	}
	return InvalidEnumError("orientation", string(value))
}

func ValidateCategory(code Category) error {
	if _, ok := categories[code]; !ok {
		return InvalidEnumError("category", string(code))
	}
	return nil
}

func ValidateCoordinate(lon, lat float64) error {
	if lon < MinLongitude || lon > MaxLongitude || lat < MinLatitude || lat > MaxLatitude {
		return CoordinateOutOfBoundsError(lon, lat)
	}
	return nil
}

// ValidateUserQuota is checked against the caller's current journey count
// before a new journey is created. Joins do not re-check it.
func ValidateUserQuota(existingJourneyCount int64) error {
	if existingJourneyCount >= MaxJourneysPerUser {
		return LimitError("journeys per user", MaxJourneysPerUser)
	}
	return nil
}
