package structs

import (
	"fmt"

	"github.com/sb25/REST-Web-Services-interaction/models"
)

type ProductImportRecord struct {
	EscellClone string `json:"escell_clone" validate:"required"`
}

// AlleleImportRecord is an allele as produced by the local systems: the
// remote attributes, an optional pipeline name and the products to attach
// once the allele is resolved.
type AlleleImportRecord struct {
	models.Allele

	Pipeline string                `json:"pipeline,omitempty" validate:"required_without=PipelineId"`
	Products []ProductImportRecord `json:"products,omitempty" validate:"dive"`
}

// Detach splits the record into the allele payload and its products.
func (r AlleleImportRecord) Detach() (models.Allele, []ProductImportRecord) {
	products := make([]ProductImportRecord, len(r.Products))
	copy(products, r.Products)
	return r.Allele, products
}

func NaturalKey(a models.Allele) string {
	return fmt.Sprintf("%s | %s | %s", a.IkmcProjectId, a.AlleleSymbolSuperscript, a.MgiAccessionId)
}
