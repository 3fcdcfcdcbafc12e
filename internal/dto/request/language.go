package request

type SetLanguageRequest struct {
	Language string `json:"language" validate:"required,oneof=en ar"`
}
