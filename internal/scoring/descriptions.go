package scoring

// The five competency categories of the question bank, plus the synthetic
// Overall pseudo-category used for the aggregate description.
const (
	CategoryCommunication   = "Communication & Active Listening"
	CategoryDecisionMaking  = "Decision Making Under Pressure"
	CategoryResilience      = "Resilience and Adaptability"
	CategoryTeamDevelopment = "Team Development and Mentorship"
	CategoryService         = "Service Excellence and Accountability"
	CategoryOverall         = "Overall"
)

var gradeDescriptions = map[string]map[string]string{
	CategoryCommunication: {
		GradeExceptional:      "Communicates with exceptional clarity under kitchen pressure, listens actively to every station, and consistently surfaces concerns before they become service failures.",
		GradeHigh:             "Communicates clearly and listens well in most situations, keeping the brigade aligned through the majority of a demanding service.",
		GradeModerate:         "Communicates adequately in routine service but misses cues or talks past team members when the pace picks up.",
		GradeDeveloping:       "Is beginning to build the habits of clear call-outs and active listening but still leaves the team guessing during busy periods.",
		GradeNeedsDevelopment: "Struggles to keep the team informed or to hear what the brigade is telling them; focused coaching on communication fundamentals is recommended.",
	},
	CategoryDecisionMaking: {
		GradeExceptional:      "Makes fast, sound calls when the rail is full, weighing food quality, safety, and the team's capacity without hesitation.",
		GradeHigh:             "Usually makes the right call under pressure and recovers quickly on the occasions a decision does not land.",
		GradeModerate:         "Handles familiar pressure points well but defers or second-guesses when a situation falls outside the usual playbook.",
		GradeDeveloping:       "Shows emerging judgment but often freezes or escalates decisions that a shift leader should own.",
		GradeNeedsDevelopment: "Decisions under pressure are frequently rushed or avoided; structured practice with service scenarios is recommended.",
	},
	CategoryResilience: {
		GradeExceptional:      "Absorbs setbacks such as equipment failure, call-outs, and menu changes without losing composure, and resets the team's focus immediately.",
		GradeHigh:             "Stays steady through most disruptions and helps the team move on from mistakes quickly.",
		GradeModerate:         "Recovers from routine setbacks but visible frustration can linger and color the rest of the shift.",
		GradeDeveloping:       "Is starting to manage reactions to adversity but still carries stress from one problem into the next.",
		GradeNeedsDevelopment: "Setbacks regularly derail both the individual and the stations around them; resilience coaching is recommended.",
	},
	CategoryTeamDevelopment: {
		GradeExceptional:      "Actively grows the people around them, matching tasks to development needs and giving feedback that cooks seek out rather than avoid.",
		GradeHigh:             "Invests in the team's growth and gives useful feedback, though coaching can slip when service demands spike.",
		GradeModerate:         "Supports the team day to day but development happens by accident more than by intent.",
		GradeDeveloping:       "Shows interest in mentoring but rarely turns it into concrete delegation or feedback.",
		GradeNeedsDevelopment: "The team around them stagnates; deliberate practice in delegation and feedback is recommended.",
	},
	CategoryService: {
		GradeExceptional:      "Holds an uncompromising standard for every plate and owns outcomes publicly, modeling accountability the whole kitchen copies.",
		GradeHigh:             "Maintains high standards and accepts responsibility for most outcomes, cutting few corners even when stretched.",
		GradeModerate:         "Meets the standard when watched but lets details slide during crunch periods, and shares blame unevenly.",
		GradeDeveloping:       "Understands the standard but does not yet hold themselves or others to it consistently.",
		GradeNeedsDevelopment: "Quality and ownership lapses are frequent; expectations need to be re-set and reinforced shift by shift.",
	},
	CategoryOverall: {
		GradeExceptional:      "An exceptional culinary leader: the judgment, composure, and people skills to run a demanding kitchen and to raise the leaders around them.",
		GradeHigh:             "A strong culinary leader with well-rounded instincts; targeted refinement in their weaker categories will complete the picture.",
		GradeModerate:         "A capable shift leader with clear strengths and equally clear gaps; the category breakdown shows where to focus next.",
		GradeDeveloping:       "Early in the leadership journey, with foundations forming; structured mentorship across the program will accelerate growth.",
		GradeNeedsDevelopment: "Not yet demonstrating the core leadership behaviors the program measures; a guided development plan is recommended before taking on shift leadership.",
	},
}

// Describe returns the canned prose for a (category, grade) pair, or the
// empty string when the pair is unknown.
func Describe(category, grade string) string {
	grades, ok := gradeDescriptions[category]
	if !ok {
		return ""
	}
	return grades[grade]
}
