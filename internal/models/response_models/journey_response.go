package response_models

type JourneyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	ThemePath string `json:"theme_path"`
}

type ParticipantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TagResponse struct {
	Topic       string   `json:"topic"`
	Orientation string   `json:"orientation"`
	Voters      []string `json:"voters"`
}

type PikmiResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Category  string   `json:"category"`
	LikedBy   []string `json:"liked_by"`
	Longitude float64  `json:"longitude"`
	Latitude  float64  `json:"latitude"`
	Link      string   `json:"link"`
}

type PikiResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Category  string  `json:"category"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Link      string  `json:"link"`
}

type JourneyDetailResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	ThemePath    string                `json:"theme_path"`
	Participants []ParticipantResponse `json:"participants"`
	Tags         []TagResponse         `json:"tags"`
	Pikmis       []PikmiResponse       `json:"pikmis"`
	Pikis        [][]PikiResponse      `json:"pikis"`
}

type CreateJourneyResponse struct {
	JourneyID string `json:"journey_id"`
}

type AddPikmiResponse struct {
	PikmiID string `json:"pikmi_id"`
}

type ScheduleDayResponse struct {
	PikiIDs []string `json:"piki_ids"`
}
