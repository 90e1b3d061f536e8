package generator

// Tone-keyed sentence fragments used to assemble posts. Each template is
// filled with the business name, industry, and optional topic.
type toneTemplates struct {
	Intros []string
	Bodies []string
	CTAs   []string
}

var tones = map[string]toneTemplates{
	"professional": {
		Intros: []string{
			"%s is setting a new standard in %s.",
			"Discover how %s approaches %s differently.",
			"At %s, excellence in %s is the baseline.",
		},
		Bodies: []string{
			"Our team brings proven expertise and a results-first mindset to every engagement.",
			"We combine industry insight with disciplined execution to deliver measurable outcomes.",
			"Every project starts with your goals and ends with results you can measure.",
		},
		CTAs: []string{
			"Reach out today to learn more.",
			"Schedule a consultation with our team.",
			"Visit our page to see what we can do for you.",
		},
	},
	"playful": {
		Intros: []string{
			"Guess who's shaking up %[2]s? %[1]s, that's who!",
			"%s just made %s a whole lot more fun.",
			"Plot twist: %s is your new favorite name in %s.",
		},
		Bodies: []string{
			"We sweat the details so you can enjoy the wins.",
			"Big ideas, zero boring meetings. That's a promise.",
			"Serious results, delivered with a smile.",
		},
		CTAs: []string{
			"Come say hi — we don't bite.",
			"Hit that follow button and stick around.",
			"DM us and let's make something great.",
		},
	},
	"bold": {
		Intros: []string{
			"%s doesn't follow %s trends. We set them.",
			"The %[2]s playbook is outdated. %[1]s wrote a new one.",
			"Stop settling. %s is redefining %s.",
		},
		Bodies: []string{
			"While others talk, we ship. Results speak loudest.",
			"We move fast, aim high, and deliver every time.",
			"No shortcuts, no excuses. Just work that wins.",
		},
		CTAs: []string{
			"Ready to level up? Let's talk.",
			"Join the businesses that refuse to blend in.",
			"Take the first step — contact us now.",
		},
	},
	"friendly": {
		Intros: []string{
			"Hey there! %s is here to help with all things %s.",
			"Looking for a partner in %[2]s? Meet %[1]s.",
			"%s knows %s can feel overwhelming. We make it simple.",
		},
		Bodies: []string{
			"We listen first, then build a plan that fits you.",
			"Real people, real support, every step of the way.",
			"Your goals become our goals from day one.",
		},
		CTAs: []string{
			"Drop us a line — we'd love to chat.",
			"Follow along for tips and updates.",
			"Get in touch and let's get started.",
		},
	},
}

const defaultTone = "friendly"

// recommendedHourOffset is the fixed per-platform "best time to post" offset
// in hours from generation time. Not analytics-driven.
var recommendedHourOffset = map[string]int{
	"instagram": 11,
	"twitter":   9,
	"linkedin":  8,
	"facebook":  13,
	"pinterest": 20,
	"tiktok":    18,
}
