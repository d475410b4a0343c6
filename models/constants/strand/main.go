package strand

import (
	"github.com/sb25/REST-Web-Services-interaction/models/constants"
)

const (
	Undefined constants.Strand = ""
	Forward   constants.Strand = "+"
	Reverse   constants.Strand = "-"
)

func CastToStrand(text string) constants.Strand {
	switch text {
	case "+", "1", "+1":
		return Forward
	case "-", "-1":
		return Reverse
	default:
		return Undefined
	}
}
