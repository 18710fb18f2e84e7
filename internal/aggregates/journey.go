// Package aggregates holds the journey aggregate: the shared trip document that
// up to eight participants edit concurrently. Every mutation here is a pure
// function over a deep copy, so a failed call never leaves a half-applied
// journey behind; committing the returned value is the coordinator's job.
package aggregates

import (
	"github.com/google/uuid"
)

type Orientation string

const (
	OrientationLike     Orientation = "like"
	OrientationDislike  Orientation = "dislike"
	OrientationNoMatter Orientation = "nomatter"
)

type Category string

const (
	CategoryMountain   Category = "MOUNTAIN"
	CategoryOcean      Category = "OCEAN"
	CategoryRiver      Category = "RIVER"
	CategoryNature     Category = "NATURE"
	CategoryCity       Category = "CITY"
	CategoryHistoric   Category = "HISTORIC"
	CategoryCulture    Category = "CULTURE"
	CategoryExhibition Category = "EXHIBITION"
	CategoryThemePark  Category = "THEME_PARK"
	CategoryActivity   Category = "ACTIVITY"
	CategoryFestival   Category = "FESTIVAL"
	CategoryRestaurant Category = "RESTAURANT"
	CategoryCafe       Category = "CAFE"
	CategoryBar        Category = "BAR"
	CategoryShopping   Category = "SHOPPING"
	CategoryLodging    Category = "LODGING"
)

var categories = map[Category]struct{}{
	CategoryMountain: {}, CategoryOcean: {}, CategoryRiver: {}, CategoryNature: {},
	CategoryCity: {}, CategoryHistoric: {}, CategoryCulture: {}, CategoryExhibition: {},
	CategoryThemePark: {}, CategoryActivity: {}, CategoryFestival: {}, CategoryRestaurant: {},
	CategoryCafe: {}, CategoryBar: {}, CategoryShopping: {}, CategoryLodging: {},
}

// Tag is a shared preference: a short topic plus which way the voters lean on it.
// One row per (topic, orientation); voters are participant user ids.
type Tag struct {
	Topic       string      `json:"topic"`
	Orientation Orientation `json:"orientation"`
	Voters      []string    `json:"voters"`
}

// Pikmi is a candidate place proposed into the pool, pending selection by likes.
type Pikmi struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Category  Category `json:"category"`
	LikedBy   []string `json:"likedBy"`
	Longitude float64  `json:"longitude"`
	Latitude  float64  `json:"latitude"`
	Link      string   `json:"link"`
}

// Piki is a place confirmed into a specific itinerary day.
type Piki struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Category  Category `json:"category"`
	Longitude float64  `json:"longitude"`
	Latitude  float64  `json:"latitude"`
	Link      string   `json:"link"`
}

// TagSpec is the caller-supplied shape of a tag, before voters are attached.
type TagSpec struct {
	Topic       string      `json:"topic"`
	Orientation Orientation `json:"orientation"`
}

// PlaceSpec is the caller-supplied shape of a pikmi or piki. ID is only
// meaningful when rescheduling a day: a non-empty ID matching a place already
// in that day's bucket keeps its identity instead of minting a new one.
type PlaceSpec struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Category  Category `json:"category"`
	Longitude float64  `json:"longitude"`
	Latitude  float64  `json:"latitude"`
	Link      string   `json:"link"`
}

// Journey is the aggregate root. The zero value is not usable; construct with
// NewJourney. Pikis always has exactly TripLengthDays(StartDate, EndDate)
// buckets, pre-allocated at creation.
type Journey struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	StartDate    int64    `json:"startDate"`
	EndDate      int64    `json:"endDate"`
	ThemePath    string   `json:"themePath"`
	Participants []string `json:"participants"`
	Tags         []Tag    `json:"tags"`
	Pikmis       []Pikmi  `json:"pikmis"`
	Pikis        [][]Piki `json:"pikis"`
}

// NewJourney validates the supplied fields and builds a fresh aggregate with
// the creator as sole participant and sole voter on every supplied tag.
// The per-user journey quota is the coordinator's concern, not checked here.
func NewJourney(name string, start, end int64, themePath string, tagSpecs []TagSpec, creator string) (Journey, error) {
	if err := ValidateJourneyName(name); err != nil {
		return Journey{}, err
	}
	if err := ValidateTripLength(start, end); err != nil {
		return Journey{}, err
	}
	tags, err := mergeTags(nil, tagSpecs, creator)
	if err != nil {
		return Journey{}, err
	}

	days := TripLengthDays(start, end)
	pikis := make([][]Piki, days)
	for i := range pikis {
		pikis[i] = []Piki{}
	}

	return Journey{
		ID:           uuid.NewString(),
		Name:         name,
		StartDate:    start,
		EndDate:      end,
		ThemePath:    themePath,
		Participants: []string{creator},
		Tags:         tags,
		Pikmis:       []Pikmi{},
		Pikis:        pikis,
	}, nil
}

// IsParticipant reports whether the user is currently a member of the journey.
func (j Journey) IsParticipant(userID string) bool {
	for _, p := range j.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// FindPikmi returns the candidate with the given id, or nil.
func (j Journey) FindPikmi(pikmiID string) *Pikmi {
	for i := range j.Pikmis {
		if j.Pikmis[i].ID == pikmiID {
			return &j.Pikmis[i]
		}
	}
	return nil
}

// AddParticipant returns a copy of the journey with the user appended.
func (j Journey) AddParticipant(userID string) (Journey, error) {
	if len(j.Participants) >= MaxParticipants {
		return Journey{}, LimitError("participants", MaxParticipants)
	}
	if j.IsParticipant(userID) {
		return Journey{}, ErrAlreadyMember
	}
	next := j.clone()
	next.Participants = append(next.Participants, userID)
	return next, nil
}

// RemoveParticipant returns a copy of the journey without the user. The user
// is also cascaded out of every tag's voters and every pikmi's likedBy; a tag
// left with no voters is dropped. Scheduled places are untouched.
func (j Journey) RemoveParticipant(userID string) (Journey, error) {
	if !j.IsParticipant(userID) {
		return Journey{}, ErrNotMember
	}
	next := j.clone()
	next.Participants = removeString(next.Participants, userID)

	kept := next.Tags[:0]
	for _, t := range next.Tags {
		t.Voters = removeString(t.Voters, userID)
		if len(t.Voters) > 0 {
			kept = append(kept, t)
		}
	}
	next.Tags = kept

	for i := range next.Pikmis {
		next.Pikmis[i].LikedBy = removeString(next.Pikmis[i].LikedBy, userID)
	}
	return next, nil
}

// SetTags replaces the tag list wholesale. A spec matching an existing
// (topic, orientation) tag keeps that tag's voters and gains the acting user;
// a new spec starts with the acting user as sole voter. The 24 cap applies to
// the merged result.
func (j Journey) SetTags(tagSpecs []TagSpec, actingUserID string) (Journey, error) {
	if !j.IsParticipant(actingUserID) {
		return Journey{}, ErrNotMember
	}
	tags, err := mergeTags(j.Tags, tagSpecs, actingUserID)
	if err != nil {
		return Journey{}, err
	}
	next := j.clone()
	next.Tags = tags
	return next, nil
}

// AddPikmi validates the spec and appends a fresh candidate with no likes yet.
func (j Journey) AddPikmi(spec PlaceSpec, actingUserID string) (Journey, string, error) {
	if !j.IsParticipant(actingUserID) {
		return Journey{}, "", ErrNotMember
	}
	if len(j.Pikmis) >= MaxPikmis {
		return Journey{}, "", LimitError("pikmis", MaxPikmis)
	}
	if err := validatePlaceSpec(spec); err != nil {
		return Journey{}, "", err
	}
	next := j.clone()
	pikmi := Pikmi{
		ID:        uuid.NewString(),
		Name:      spec.Name,
		Address:   spec.Address,
		Category:  spec.Category,
		LikedBy:   []string{},
		Longitude: spec.Longitude,
		Latitude:  spec.Latitude,
		Link:      spec.Link,
	}
	next.Pikmis = append(next.Pikmis, pikmi)
	return next, pikmi.ID, nil
}

// LikePikmi records the user's like on a candidate. Liking twice is an error,
// not a no-op, so clients can tell a stale view from a fresh one.
func (j Journey) LikePikmi(pikmiID, userID string) (Journey, error) {
	if !j.IsParticipant(userID) {
		return Journey{}, ErrNotMember
	}
	if j.FindPikmi(pikmiID) == nil {
		return Journey{}, ErrNotFound
	}
	next := j.clone()
	pikmi := next.FindPikmi(pikmiID)
	for _, u := range pikmi.LikedBy {
		if u == userID {
			return Journey{}, ErrAlreadyLiked
		}
	}
	pikmi.LikedBy = append(pikmi.LikedBy, userID)
	return next, nil
}

// UnlikePikmi withdraws the user's like on a candidate.
func (j Journey) UnlikePikmi(pikmiID, userID string) (Journey, error) {
	if !j.IsParticipant(userID) {
		return Journey{}, ErrNotMember
	}
	if j.FindPikmi(pikmiID) == nil {
		return Journey{}, ErrNotFound
	}
	next := j.clone()
	pikmi := next.FindPikmi(pikmiID)
	liked := false
	for _, u := range pikmi.LikedBy {
		if u == userID {
			liked = true
			break
		}
	}
	if !liked {
		return Journey{}, ErrNotLiked
	}
	pikmi.LikedBy = removeString(pikmi.LikedBy, userID)
	return next, nil
}

// ScheduleDay replaces one itinerary day's bucket with the supplied places.
// A spec carrying the id of a place already scheduled on that day keeps the
// id; everything else is minted fresh. Returns the ids in bucket order.
func (j Journey) ScheduleDay(dayIndex int, specs []PlaceSpec, actingUserID string) (Journey, []string, error) {
	if !j.IsParticipant(actingUserID) {
		return Journey{}, nil, ErrNotMember
	}
	if dayIndex < 0 || dayIndex >= len(j.Pikis) {
		return Journey{}, nil, IndexOutOfRangeError(dayIndex, len(j.Pikis))
	}
	if len(specs) > MaxPikisPerDay {
		return Journey{}, nil, LimitError("pikis per day", MaxPikisPerDay)
	}

	existing := make(map[string]struct{}, len(j.Pikis[dayIndex]))
	for _, p := range j.Pikis[dayIndex] {
		existing[p.ID] = struct{}{}
	}

	bucket := make([]Piki, 0, len(specs))
	ids := make([]string, 0, len(specs))
	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		if err := validatePlaceSpec(spec); err != nil {
			return Journey{}, nil, err
		}
		id := spec.ID
		if _, ok := existing[id]; id == "" || !ok {
			id = uuid.NewString()
		}
		if _, dup := seen[id]; dup {
			return Journey{}, nil, DuplicateError("piki " + id)
		}
		seen[id] = struct{}{}
		bucket = append(bucket, Piki{
			ID:        id,
			Name:      spec.Name,
			Address:   spec.Address,
			Category:  spec.Category,
			Longitude: spec.Longitude,
			Latitude:  spec.Latitude,
			Link:      spec.Link,
		})
		ids = append(ids, id)
	}

	next := j.clone()
	next.Pikis[dayIndex] = bucket
	return next, ids, nil
}

func validatePlaceSpec(spec PlaceSpec) error {
	if err := ValidateCategory(spec.Category); err != nil {
		return err
	}
	if err := ValidateCoordinate(spec.Longitude, spec.Latitude); err != nil {
		return err
	}
	if spec.Name == "" {
		return ValidationError("name", "is required")
	}
	return nil
}

// mergeTags builds the replacement tag list from caller specs, preserving the
// voter sets of tags that already exist with the same (topic, orientation).
func mergeTags(current []Tag, specs []TagSpec, actingUserID string) ([]Tag, error) {
	type key struct {
		topic       string
		orientation Orientation
	}
	byKey := make(map[key]Tag, len(current))
	for _, t := range current {
		byKey[key{t.Topic, t.Orientation}] = t
	}

	merged := make([]Tag, 0, len(specs))
	seen := make(map[key]int, len(specs))
	for _, spec := range specs {
		if err := ValidateTagTopic(spec.Topic); err != nil {
			return nil, err
		}
		if err := ValidateOrientation(spec.Orientation); err != nil {
			return nil, err
		}
		k := key{spec.Topic, spec.Orientation}
		if _, dup := seen[k]; dup {
			// Same spec twice in one request collapses to one row.
			continue
		}
		tag, ok := byKey[k]
		if !ok {
			tag = Tag{Topic: spec.Topic, Orientation: spec.Orientation, Voters: []string{}}
		} else {
			tag.Voters = append([]string(nil), tag.Voters...)
		}
		if !containsString(tag.Voters, actingUserID) {
			tag.Voters = append(tag.Voters, actingUserID)
		}
		seen[k] = len(merged)
		merged = append(merged, tag)
	}
	if len(merged) > MaxTags {
		return nil, LimitError("tags", MaxTags)
	}
	return merged, nil
}

// clone deep-copies the aggregate so transitions never alias the caller's value.
func (j Journey) clone() Journey {
	next := j
	next.Participants = append([]string(nil), j.Participants...)
	next.Tags = make([]Tag, len(j.Tags))
	for i, t := range j.Tags {
		t.Voters = append([]string(nil), t.Voters...)
		next.Tags[i] = t
	}
	next.Pikmis = make([]Pikmi, len(j.Pikmis))
	for i, p := range j.Pikmis {
		p.LikedBy = append([]string(nil), p.LikedBy...)
		next.Pikmis[i] = p
	}
	next.Pikis = make([][]Piki, len(j.Pikis))
	for i, day := range j.Pikis {
		next.Pikis[i] = append([]Piki{}, day...)
	}
	return next
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
