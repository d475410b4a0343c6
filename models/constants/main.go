package constants

/*
	Defines a set of base level
	constants and enums shared by the
	repository client and the sync services.
*/
type AssemblyId string
type Strand string
