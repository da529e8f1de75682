package aggregate

// DefaultStopwordList mixes generic English stopwords with terms that are
// near-universal in CORD-19 titles and would drown out everything else.
var DefaultStopwordList = []string{
	"the", "and", "of", "in", "to", "a", "for", "on", "with", "by", "an",
	"is", "from", "that", "are", "as", "at", "be", "this", "we", "our",
	"or", "using", "use", "study", "studies", "paper", "research",
	"covid", "covid19", "coronavirus", "sars", "sarscov2", "2019",
	"2019ncov", "novel",
}

// DefaultStopwords is the list in set form.
var DefaultStopwords = NewStopwordSet(DefaultStopwordList...)

// StopwordSet is a lookup set for excluded tokens.
type StopwordSet map[string]struct{}

// NewStopwordSet builds a set from words.
func NewStopwordSet(words ...string) StopwordSet {
	s := make(StopwordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Contains reports set membership.
func (s StopwordSet) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// Add extends the set.
func (s StopwordSet) Add(words ...string) {
	for _, w := range words {
		s[w] = struct{}{}
	}
}
