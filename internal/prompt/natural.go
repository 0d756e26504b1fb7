package prompt

var variations = []string{
	"Remember to vary your responses - don't fall into predictable patterns.",
	"Each response should feel fresh and different from previous ones.",
	"CRITICAL: Avoid repetitive phrases and structures that make you sound robotic.",
	"Imagine this character speaking naturally - they wouldn't repeat the same format every time.",
	"Your responses should be unpredictable in structure but consistent in personality.",
}

// addVariation appends one of the fixed variation lines, chosen by intn.
func addVariation(system string, intn func(n int) int) string {
	return system + "\n\nADDITIONAL INSTRUCTION: " + variations[intn(len(variations))]
}
