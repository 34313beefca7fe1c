package dtos

import "github.com/xdoubleu/essentia/v2/pkg/validate"

type ToggleEventDto struct {
	Title string `schema:"title"`
}

func (dto *ToggleEventDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "title", dto.Title, validate.IsNotEmpty)

	return v.Valid(), v.Errors()
}

// EventsDto carries a batch of titles. An empty batch is a harmless no-op
// for both select and deselect, so nothing is validated.
type EventsDto struct {
	Titles []string `schema:"titles"`
}

func (dto *EventsDto) Validate() (bool, map[string]string) {
	return true, make(map[string]string)
}

type ToggleExpansionDto struct {
	ID string `schema:"id"`
}

func (dto *ToggleExpansionDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "id", dto.ID, validate.IsNotEmpty)

	return v.Valid(), v.Errors()
}
