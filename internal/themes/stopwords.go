package themes

// stopwordList contains English function words and review boilerplate that
// carry no discriminative value for topic extraction. Passed to the count
// vectoriser so they never enter the vocabulary.
var stopwordList = []string{
	"a", "an", "the", "and", "or", "but", "if", "then", "else", "when",
	"for", "to", "of", "in", "on", "at", "by", "with", "as", "from",
	"is", "are", "was", "were", "be", "been", "being", "am",
	"it", "its", "this", "that", "these", "those", "there", "here",
	"i", "me", "my", "we", "our", "you", "your", "he", "she", "they", "them", "their",
	"up", "down", "over", "under", "again", "further", "than", "so", "such",
	"into", "about", "between", "through", "during", "before", "after",
	"above", "below", "out", "off", "own", "same", "too", "very",
	"can", "will", "just", "should", "would", "could", "now", "also",
	"have", "has", "had", "do", "does", "did", "not", "no",
	"all", "any", "both", "each", "few", "more", "most", "other", "some",
	"what", "which", "who", "whom", "why", "how", "because", "while",
	"app", "bank", "banking",
}
