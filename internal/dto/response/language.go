package response

type PreferenceResponse struct {
	Language string `json:"language"`
	IsRTL    bool   `json:"is_rtl"`
	Dir      string `json:"dir"`
}

type TranslationsResponse struct {
	Language     string            `json:"language"`
	Dir          string            `json:"dir"`
	Translations map[string]string `json:"translations"`
}
