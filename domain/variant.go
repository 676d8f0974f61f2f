package domain

import (
	"math/rand"
	"strconv"
)

// Variant identifies one of the four fixed interview question sets. The id
// is persisted client-side in the VariantCookie and never changes within a
// session.
type Variant int

// VariantCookie is the cookie that pins a session to its question set.
const VariantCookie = "cefr_version"

const VariantCount = 4

// ParseVariant reports whether raw is a valid variant cookie value.
func ParseVariant(raw string) (Variant, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > VariantCount {
		return 0, false
	}
	return Variant(n), true
}

// RandomVariant draws a variant uniformly. Plain math/rand is fine here:
// the id carries no secret, it only spreads sessions across question sets.
func RandomVariant() Variant {
	return Variant(rand.Intn(VariantCount) + 1)
}

func (v Variant) String() string {
	return strconv.Itoa(int(v))
}

// Questions returns the variant's six proficiency-tiered question pairs,
// one pair per CEFR level from A1 to C2.
func (v Variant) Questions() string {
	return variantQuestions[v]
}

var variantQuestions = map[Variant]string{
	1: `A1: What is your name? Where do you live?
A2: What do you usually do on weekends? Who do you spend them with?
B1: Tell me about a trip you enjoyed. What made it special?
B2: Do you think social media has changed how people make friends? Why?
C1: How would you weigh the benefits of remote work against its drawbacks for a person's career?
C2: To what extent should governments regulate emerging technologies such as AI? Defend your position with concrete examples.`,
	2: `A1: What is your job or what do you study? Do you like it?
A2: What did you eat yesterday? Can you describe your favourite meal?
B1: Describe a skill you would like to learn. Why does it interest you?
B2: Is it better to live in a big city or a small town? Justify your choice.
C1: What role should universities play in preparing people for work, beyond teaching facts?
C2: Some argue economic growth and environmental protection are incompatible. Critically assess that claim.`,
	3: `A1: How many people are in your family? What are their names?
A2: What is the weather like today? What season do you like most?
B1: Tell me about a book or film that impressed you recently. What was it about?
B2: Should children be given homework every day? Argue for or against.
C1: How has the way we consume news changed in your lifetime, and with what consequences?
C2: Evaluate the idea that globalisation erodes local cultures. Where do you stand, and why?`,
	4: `A1: What time do you usually wake up? What do you do in the morning?
A2: Do you play any sports? How often do you exercise?
B1: Describe a problem you solved at work or school. How did you handle it?
B2: Would you rather have a job you love with low pay, or a well-paid job you dislike? Explain.
C1: In what ways can travel change a person's worldview? Draw on your own experience if you can.
C2: Discuss whether a universal basic income would strengthen or weaken a society. Support your reasoning.`,
}
