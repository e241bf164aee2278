package reflection

// Groups lists the prompt categories in rotation order.
var Groups = [GroupCount]string{
	"Self Awareness & Emotions",
	"Discipline & Process",
	"Performance & Improvement",
	"Mindset & Confidence",
}

const (
	GroupCount      = 4
	PromptsPerGroup = 5
)

// Prompts holds the fixed questions of each group, indexed like Groups.
var Prompts = [GroupCount][PromptsPerGroup]string{
	{
		"What emotions did you feel most while trading today?",
		"Were you patient or impulsive today?",
		"What triggered your strongest reaction today?",
		"Did you overtrade or undertrade? Why?",
		"Were you fearful of missing out?",
	},
	{
		"Did you stick to your trading plan?",
		"Did you respect your stop loss on every trade?",
		"Did you journal every trade without skipping today?",
		"Did you size correctly?",
		"What rule did you bend or break today?",
	},
	{
		"What was your best trade today? Why?",
		"What was your worst trade today? Why?",
		"Did you let one trade affect the next?",
		"Was your analysis accurate, regardless of outcome?",
		"Did you identify your setup correctly?",
	},
	{
		"Were you confident or doubtful when placing trades?",
		"Did you trust your edge today?",
		"Did you act out of fear or conviction?",
		"Did you chase any trades?",
		"Did you protect your mental capital as much as your financial capital?",
	},
}
