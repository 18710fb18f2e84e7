package response_models

type TagPresetResponse struct {
	Topic       string `json:"topic"`
	Orientation string `json:"orientation"`
}
