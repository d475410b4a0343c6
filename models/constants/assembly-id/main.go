package assemblyId

import (
	"github.com/sb25/REST-Web-Services-interaction/models/constants"
	"strings"
)

const (
	Unknown constants.AssemblyId = "Unknown"

	GRCm39  constants.AssemblyId = "GRCm39"
	GRCm38  constants.AssemblyId = "GRCm38"
	NCBIM37 constants.AssemblyId = "NCBIM37"
	NCBIM36 constants.AssemblyId = "NCBIM36"
)

func CastToAssemblyId(text string) constants.AssemblyId {
	switch strings.ToLower(text) {
	case "grcm39":
		return GRCm39
	case "grcm38":
		return GRCm38
	case "ncbim37":
		return NCBIM37
	case "ncbim36":
		return NCBIM36
	default:
		return Unknown
	}
}

func IsKnownAssemblyId(text string) bool {
	// attempt to cast to assemblyId and
	// return if unknown assemblyId
	return CastToAssemblyId(text) != Unknown
}
