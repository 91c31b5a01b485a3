package types

// Model describes one processing model exposed by the API.
type Model struct {
	// Public tag used in /process-image/{model_type}.
	// example: denoising
	ID string `json:"id" example:"denoising"`
	// Human-friendly name.
	// example: Denoising
	Name string `json:"name" example:"Denoising"`
	// What the model does to an image.
	// example: Grayscale conversion with blur and median filtering
	Description string `json:"description" example:"Grayscale conversion with blur and median filtering"`
	// Whether an optional "mask" upload is used.
	// example: false
	AcceptsMask bool `json:"accepts_mask" example:"false"`
	// Whether a processor is installed for this model.
	// example: true
	Available bool `json:"available" example:"true"`
}
