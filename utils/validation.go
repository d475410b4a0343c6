package utils

import (
	"github.com/go-playground/validator/v10"

	"github.com/sb25/REST-Web-Services-interaction/models/constants"
	assemblyId "github.com/sb25/REST-Web-Services-interaction/models/constants/assembly-id"
	"github.com/sb25/REST-Web-Services-interaction/models/constants/chromosome"
	"github.com/sb25/REST-Web-Services-interaction/models/constants/strand"
)

// NewValidator returns a validator aware of the repository's
// chromosome, strand and assembly vocabularies.
func NewValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("chromosome", func(fl validator.FieldLevel) bool {
		return chromosome.IsValidMouseChromosome(fl.Field().String())
	})
	_ = v.RegisterValidation("strand", func(fl validator.FieldLevel) bool {
		s := constants.Strand(fl.Field().String())
		return s == strand.Forward || s == strand.Reverse
	})
	_ = v.RegisterValidation("assembly", func(fl validator.FieldLevel) bool {
		return assemblyId.IsKnownAssemblyId(fl.Field().String())
	})

	return v
}
