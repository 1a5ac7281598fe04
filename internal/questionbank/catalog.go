package questionbank

import "github.com/nexosr/career-engine/internal/model"

var (
	agreementScale = []string{"Strongly Disagree", "Disagree", "Neutral", "Agree", "Strongly Agree"}
	interestScale  = []string{"Not at all", "Slightly", "Moderately", "Very much", "Extremely"}
	qualityScale   = []string{"Poor", "Fair", "Good", "Excellent"}
	levelScale     = []string{"Beginner", "Intermediate", "Advanced", "Expert"}
	codingScale    = []string{"None", "Basic", "Intermediate", "Advanced"}
)

func aptitude(id int, prompt string, options []string, correct int, category string) model.Item {
	return model.Item{ID: id, Prompt: prompt, Options: options, CorrectIndex: &correct, Category: category}
}

func trait(id int, prompt, name string) model.Item {
	return model.Item{ID: id, Prompt: prompt, Options: agreementScale, Trait: name}
}

func field(id int, prompt, name string) model.Item {
	return model.Item{ID: id, Prompt: prompt, Options: interestScale, Field: name}
}

func skill(id int, prompt string, options []string, name string) model.Item {
	return model.Item{ID: id, Prompt: prompt, Options: options, Skill: name}
}

// catalogs holds the reference items for each test type. Never mutated.
var catalogs = map[model.TestType][]model.Item{
	model.TestTypeAptitude: {
		aptitude(1, "If a train travels 120 km in 2 hours, what is its average speed?", []string{"40 km/h", "60 km/h", "80 km/h", "100 km/h"}, 1, "numerical"),
		aptitude(2, "Complete the series: 2, 6, 12, 20, ?", []string{"28", "30", "32", "36"}, 1, "logical"),
		aptitude(3, "Which word is the odd one out: Apple, Banana, Carrot, Mango?", []string{"Apple", "Banana", "Carrot", "Mango"}, 2, "verbal"),
		aptitude(4, "If COMPUTER is coded as DNQRWUFS, how is PRINTER coded?", []string{"QSJOUFR", "QSJOUES", "QSJOUFS", "QRJOUES"}, 2, "logical"),
		aptitude(5, "A rectangle has length 12cm and width 8cm. What is its area?", []string{"80 sq cm", "96 sq cm", "104 sq cm", "120 sq cm"}, 1, "numerical"),
		aptitude(6, "Choose the word most similar to 'Abundant':", []string{"Scarce", "Plentiful", "Limited", "Rare"}, 1, "verbal"),
		aptitude(7, "If 15% of a number is 45, what is the number?", []string{"200", "250", "300", "350"}, 2, "numerical"),
		aptitude(8, "Find the missing number: 3, 9, 27, 81, ?", []string{"162", "189", "243", "324"}, 2, "logical"),
		aptitude(9, "Which shape has the most sides?", []string{"Pentagon", "Hexagon", "Heptagon", "Octagon"}, 3, "spatial"),
		aptitude(10, "Arrange: RELIABLE - Find the 5th letter from left", []string{"A", "B", "L", "I"}, 0, "verbal"),
		aptitude(11, "What comes next: J, F, M, A, M, J, ?", []string{"A", "J", "S", "O"}, 1, "logical"),
		aptitude(12, "If you buy 7 items at ₹143 each, total cost is?", []string{"₹991", "₹1001", "₹1011", "₹1021"}, 1, "numerical"),
		aptitude(13, "Which is the antonym of 'Optimistic'?", []string{"Hopeful", "Pessimistic", "Positive", "Cheerful"}, 1, "verbal"),
		aptitude(14, "A cube has how many edges?", []string{"6", "8", "10", "12"}, 3, "spatial"),
		aptitude(15, "If A=1, B=2... Z=26, what is CAT?", []string{"24", "27", "30", "33"}, 0, "logical"),
	},
	model.TestTypePersonality: {
		trait(1, "I enjoy meeting new people and making friends.", "extroversion"),
		trait(2, "I prefer to plan things in advance rather than being spontaneous.", "conscientiousness"),
		trait(3, "I often worry about things that might go wrong.", "neuroticism"),
		trait(4, "I enjoy trying new and creative approaches to problems.", "openness"),
		trait(5, "I find it easy to empathize with others' feelings.", "agreeableness"),
		trait(6, "I feel energized after social gatherings.", "extroversion"),
		trait(7, "I always complete tasks before deadlines.", "conscientiousness"),
		trait(8, "I stay calm under pressure.", "neuroticism"),
		trait(9, "I enjoy exploring abstract ideas and theories.", "openness"),
		trait(10, "I prefer cooperation over competition.", "agreeableness"),
		trait(11, "I am the life of the party.", "extroversion"),
		trait(12, "I pay attention to details.", "conscientiousness"),
		trait(13, "I get stressed easily.", "neuroticism"),
		trait(14, "I appreciate art, music, and literature.", "openness"),
		trait(15, "I trust others easily.", "agreeableness"),
	},
	model.TestTypeCareerInterest: {
		field(1, "I enjoy solving complex mathematical problems.", "stem"),
		field(2, "I like helping others with their personal problems.", "social"),
		field(3, "I enjoy creating art, music, or writing.", "creative"),
		field(4, "I like leading and managing teams.", "business"),
		field(5, "I enjoy working with machines and technology.", "technical"),
		field(6, "I prefer working outdoors in nature.", "outdoor"),
		field(7, "I enjoy analyzing data and statistics.", "analytical"),
		field(8, "I like teaching and explaining concepts to others.", "social"),
		field(9, "I enjoy designing and building things.", "creative"),
		field(10, "I like negotiating and persuading others.", "business"),
		field(11, "I enjoy programming and coding.", "technical"),
		field(12, "I like conducting scientific experiments.", "stem"),
		field(13, "I enjoy performing in front of an audience.", "creative"),
		field(14, "I like organizing events and activities.", "business"),
		field(15, "I enjoy reading and researching topics in depth.", "analytical"),
	},
	model.TestTypeSkillAssessment: {
		skill(1, "Rate your proficiency in Microsoft Office (Word, Excel, PowerPoint).", levelScale, "office_tools"),
		skill(2, "Rate your coding/programming skills.", codingScale, "programming"),
		skill(3, "Rate your public speaking abilities.", qualityScale, "communication"),
		skill(4, "Rate your time management skills.", qualityScale, "management"),
		skill(5, "Rate your teamwork and collaboration skills.", qualityScale, "teamwork"),
		skill(6, "Rate your problem-solving abilities.", qualityScale, "problem_solving"),
		skill(7, "Rate your creativity and innovation skills.", qualityScale, "creativity"),
		skill(8, "Rate your leadership abilities.", qualityScale, "leadership"),
		skill(9, "Rate your analytical thinking skills.", qualityScale, "analytical"),
		skill(10, "Rate your written communication skills.", qualityScale, "writing"),
		skill(11, "Rate your networking abilities.", qualityScale, "networking"),
		skill(12, "Rate your adaptability to change.", qualityScale, "adaptability"),
		skill(13, "Rate your critical thinking skills.", qualityScale, "critical_thinking"),
		skill(14, "Rate your digital literacy skills.", levelScale, "digital"),
		skill(15, "Rate your emotional intelligence.", qualityScale, "emotional_intelligence"),
	},
}
