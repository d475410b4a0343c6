package models

type Pipeline struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Allele is the remote representation of a targeted allele. It carries no
// products: those are submitted separately once the allele has an id.
type Allele struct {
	Id         int `json:"id,omitempty"`
	PipelineId int `json:"pipeline_id,omitempty"`

	IkmcProjectId           string `json:"ikmc_project_id" validate:"required"`
	AlleleSymbolSuperscript string `json:"allele_symbol_superscript" validate:"required"`
	MgiAccessionId          string `json:"mgi_accession_id" validate:"required,startswith=MGI:"`

	Assembly      string `json:"assembly,omitempty" validate:"omitempty,assembly"`
	Chromosome    string `json:"chromosome,omitempty" validate:"omitempty,chromosome"`
	Strand        string `json:"strand,omitempty" validate:"omitempty,strand"`
	DesignType    string `json:"design_type,omitempty"`
	DesignSubtype string `json:"design_subtype,omitempty"`

	HomologyArmStart int `json:"homology_arm_start,omitempty"`
	HomologyArmEnd   int `json:"homology_arm_end,omitempty" validate:"omitempty,gtefield=HomologyArmStart"`
	CassetteStart    int `json:"cassette_start,omitempty"`
	CassetteEnd      int `json:"cassette_end,omitempty" validate:"omitempty,gtefield=CassetteStart"`
	LoxpStart        int `json:"loxp_start,omitempty"`
	LoxpEnd          int `json:"loxp_end,omitempty" validate:"omitempty,gtefield=LoxpStart"`

	Cassette           string `json:"cassette,omitempty"`
	Backbone           string `json:"backbone,omitempty"`
	IntermediateVector string `json:"intermediate_vector,omitempty"`
	TargetingVector    string `json:"targeting_vector,omitempty"`
}

type Product struct {
	Id          int    `json:"id,omitempty"`
	EscellClone string `json:"escell_clone"`
	AlleleId    int    `json:"allele_id"`
}
