package chromosome

import (
	"fmt"
	"strconv"
	"strings"
)

func ValidListOfMouseChromosomes() []string {
	var mouseChroms []string
	for i := 1; i < 20; i++ {
		mouseChroms = append(mouseChroms, fmt.Sprint(i))
	}
	mouseChroms = append(mouseChroms, "X")
	mouseChroms = append(mouseChroms, "Y")
	mouseChroms = append(mouseChroms, "MT")
	return mouseChroms
}

func IsValidMouseChromosome(text string) bool {
	// Check if number can be represented as an int as is non-zero
	chromNumber, _ := strconv.Atoi(text)
	if chromNumber > 0 {
		// It can..
		// Check if it in range 1-19
		return chromNumber < 20
	}

	// No it can't..
	// Check if it is an X, Y or MT
	switch strings.ToLower(text) {
	case "x", "y", "mt":
		return true
	}

	return false
}
