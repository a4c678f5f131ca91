package lesson

import (
	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.Title = core.CleanString(nl.Title)
	nl.Description = core.CleanString(nl.Description)
	nl.ModuleID = core.CleanString(nl.ModuleID)
	return validate.Struct(nl)
}

func (ul *UpdateLesson) Validate(validate *validator.Validate) error {
	ul.Title = core.CleanString(ul.Title)
	ul.Description = core.CleanString(ul.Description)
	return validate.Struct(ul)
}
