package chat

// Topic is one of the teen health areas the chatbot specializes in.
type Topic string

const (
	TopicNutrition          Topic = "nutrition"
	TopicSanitation         Topic = "sanitation"
	TopicHealth             Topic = "health"
	TopicSubstanceAbuse     Topic = "substance_abuse"
	TopicHealthyLifestyle   Topic = "healthy_lifestyle"
	TopicReproductiveHealth Topic = "reproductive_health"
	TopicHIVPrevention      Topic = "hiv_prevention"
	TopicInjuriesViolence   Topic = "injuries_violence"
	TopicGrowingHealthy     Topic = "growing_healthy"
)

// topicOrder fixes iteration order for matching and listing; map
// iteration would make topic detection nondeterministic.
var topicOrder = []Topic{
	TopicNutrition,
	TopicSanitation,
	TopicHealth,
	TopicSubstanceAbuse,
	TopicHealthyLifestyle,
	TopicReproductiveHealth,
	TopicHIVPrevention,
	TopicInjuriesViolence,
	TopicGrowingHealthy,
}

// topicKeywords maps each topic to the phrases that select it. Matching
// is case-insensitive substring search in listed order; the first
// matching topic wins.
var topicKeywords = map[Topic][]string{
	TopicNutrition:          {"food", "eating", "diet", "healthy eating", "vitamins", "calories", "balanced diet", "eat healthier", "nutrition"},
	TopicSanitation:         {"clean", "hygiene", "wash", "bath", "cleanliness", "personal care"},
	TopicHealth:             {"doctor", "medical", "wellness", "body", "health check", "sick", "illness"},
	TopicSubstanceAbuse:     {"drugs", "alcohol", "smoking", "addiction", "peer pressure", "saying no", "smoke", "drink"},
	TopicHealthyLifestyle:   {"exercise", "fitness", "sports", "active", "lifestyle", "habits"},
	TopicReproductiveHealth: {"puberty", "changes", "body changes", "periods", "relationships"},
	TopicHIVPrevention:      {"safe", "protection", "std", "safe sex", "condoms", "testing"},
	TopicInjuriesViolence:   {"safety", "bullying", "fight", "accident", "emergency", "first aid"},
	TopicGrowingHealthy:     {"growth", "development", "teen years", "adolescence", "maturing"},
}

// topicDescriptions are the human-readable labels shown by the topic
// listing endpoint.
var topicDescriptions = map[Topic]string{
	TopicNutrition:          "Healthy eating, balanced diet, and nutrition",
	TopicSanitation:         "Personal hygiene and cleanliness",
	TopicHealth:             "General health and wellness",
	TopicSubstanceAbuse:     "Drug and alcohol prevention",
	TopicHealthyLifestyle:   "Fitness, exercise, and healthy habits",
	TopicReproductiveHealth: "Puberty and body changes",
	TopicHIVPrevention:      "Sexual health and protection",
	TopicInjuriesViolence:   "Safety and conflict resolution",
	TopicGrowingHealthy:     "Healthy growth and development",
}

var followUps = map[Topic][]string{
	TopicNutrition: {
		"What are some healthy snacks I can eat between meals?",
		"How can I talk to my parents about eating healthier?",
		"What should I do if I'm worried about my weight?",
	},
	TopicSanitation: {
		"How often should I shower or bathe?",
		"What should I do if I have acne or skin problems?",
		"How can I keep my room clean and organized?",
	},
	TopicHealth: {
		"When should I see a doctor?",
		"How can I deal with feeling stressed or anxious?",
		"What are some ways to get better sleep?",
	},
	TopicSubstanceAbuse: {
		"How can I say no to peer pressure?",
		"What are the effects of vaping?",
		"Where can I get help if I need it?",
	},
	TopicHealthyLifestyle: {
		"What are some fun ways to exercise?",
		"How much screen time is too much?",
		"How can I make exercise a habit?",
	},
	TopicReproductiveHealth: {
		"Is it normal to feel this way about my changing body?",
		"How can I talk to my parents about puberty?",
		"What should I know about relationships?",
	},
	TopicHIVPrevention: {
		"Where can I get tested?",
		"How do I talk to my partner about protection?",
		"What are the different types of protection?",
	},
	TopicInjuriesViolence: {
		"What should I do if I'm being bullied?",
		"How can I stay safe online?",
		"What are some ways to resolve conflicts peacefully?",
	},
	TopicGrowingHealthy: {
		"How can I build my confidence?",
		"What should I do if I feel overwhelmed?",
		"How can I set goals for my future?",
	},
}

// generalFollowUps are offered when a user has no identified topic yet.
var generalFollowUps = []string{
	"What health topic interests you?",
	"Do you have questions about growing up healthy?",
	"Would you like to talk about fitness or nutrition?",
}

// recentTopicFollowUps are offered when the user has history but none
// of it matched a topic.
var recentTopicFollowUps = []string{
	"What health topic would you like to learn about?",
	"Do you have questions about nutrition or exercise?",
	"Would you like advice on staying healthy?",
}
