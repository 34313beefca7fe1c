package dtos

import "github.com/xdoubleu/essentia/v2/pkg/validate"

type CreateFilterDto struct {
	Name string `schema:"name"`
}

func (dto *CreateFilterDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "name", dto.Name, validate.IsNotEmpty)

	return v.Valid(), v.Errors()
}
