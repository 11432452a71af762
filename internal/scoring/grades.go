package scoring

// Grading scales. The individual scale covers a single category's 0-8 point
// range; the overall scale covers the 0-40 point aggregate.
const (
	ScaleIndividual = "individual"
	ScaleOverall    = "overall"
)

// Proficiency grade labels, ordinal from lowest to highest.
const (
	GradeNeedsDevelopment = "Needs Development"
	GradeDeveloping       = "Developing Proficiency"
	GradeModerate         = "Moderate Proficiency"
	GradeHigh             = "High Proficiency"
	GradeExceptional      = "Exceptional Proficiency"
	GradeNotAvailable     = "Not Available"
)

type gradeRange struct {
	min, max int
	label    string
}

// Ranges are checked in listed order and the first match wins. On the
// individual scale a score of 1 sits in both the Developing and the Needs
// Development ranges; the listed order resolves it to Developing. Do not
// reorder these tables.
var individualRanges = []gradeRange{
	{7, 8, GradeExceptional},
	{5, 6, GradeHigh},
	{3, 4, GradeModerate},
	{1, 2, GradeDeveloping},
	{0, 1, GradeNeedsDevelopment},
}

var overallRanges = []gradeRange{
	{36, 40, GradeExceptional},
	{30, 35, GradeHigh},
	{20, 29, GradeModerate},
	{10, 19, GradeDeveloping},
	{0, 9, GradeNeedsDevelopment},
}

// Classify maps a raw score to its proficiency grade on the given scale.
// Scores outside the scale's domain (including negatives) grade as
// Not Available.
func Classify(score int, scale string) string {
	var ranges []gradeRange
	switch scale {
	case ScaleIndividual:
		ranges = individualRanges
	case ScaleOverall:
		ranges = overallRanges
	default:
		return GradeNotAvailable
	}

	for _, r := range ranges {
		if score >= r.min && score <= r.max {
			return r.label
		}
	}
	return GradeNotAvailable
}
