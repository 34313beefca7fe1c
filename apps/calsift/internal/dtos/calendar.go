package dtos

import "github.com/xdoubleu/essentia/v2/pkg/validate"

type ConnectCalendarDto struct {
	SourceURL string `schema:"source_url"`
}

func (dto *ConnectCalendarDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "source_url", dto.SourceURL, validate.IsNotEmpty)

	return v.Valid(), v.Errors()
}

type DiscoverDto struct {
	PageURL string `schema:"page_url"`
}

func (dto *DiscoverDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "page_url", dto.PageURL, validate.IsNotEmpty)

	return v.Valid(), v.Errors()
}
