package session

// DefaultQuestions is the fixed question bank for the "Understanding Media"
// chapter. Selection is uniform-random with replacement.
var DefaultQuestions = []string{
	"What is media?",
	"Why is television called mass media?",
	"How has technology changed the media?",
	"What is the difference between print media and electronic media?",
	"Why does mass media need a lot of money?",
	"How does media earn money?",
	"What is the role of media in a democracy?",
	"What is a balanced media report?",
	"Why is independent media important in a democracy?",
	"What is censorship?",
	"How does media set the agenda?",
	"Give an example of how media influenced public awareness.",
	"Why do advertisements appear so often on TV?",
	"What is social advertising?",
	"How can media reports be one-sided?",
	"What questions should we ask to analyze a news report?",
	"How does television influence our view of the world?",
	"Why is it important to know both sides of a story?",
	"What is the relationship between media and business?",
	"Why should we be active viewers of media?",
}
