package analysis

type opinion struct {
	polarity     float64
	subjectivity float64
}

var lexicon = map[string]opinion{
	"amazing":      {0.6, 0.9},
	"awesome":      {1.0, 1.0},
	"bad":          {-0.7, 0.667},
	"beautiful":    {0.85, 1.0},
	"best":         {1.0, 0.3},
	"better":       {0.5, 0.5},
	"boring":       {-1.0, 1.0},
	"brilliant":    {0.9, 1.0},
	"broken":       {-0.4, 0.4},
	"clear":        {0.1, 0.383},
	"confusing":    {-0.3, 0.5},
	"cool":         {0.35, 0.65},
	"disappointed": {-0.75, 0.75},
	"disgusting":   {-1.0, 1.0},
	"easy":         {0.433, 0.833},
	"excellent":    {1.0, 1.0},
	"fantastic":    {0.4, 0.9},
	"favorite":     {0.5, 1.0},
	"fine":         {0.417, 0.5},
	"fun":          {0.3, 0.2},
	"funny":        {0.25, 0.75},
	"good":         {0.7, 0.6},
	"great":        {0.8, 0.75},
	"happy":        {0.8, 1.0},
	"hard":         {-0.292, 0.542},
	"hate":         {-0.8, 0.9},
	"helpful":      {0.5, 0.5},
	"horrible":     {-1.0, 1.0},
	"important":    {0.4, 1.0},
	"incredible":   {0.9, 0.9},
	"interesting":  {0.5, 0.5},
	"love":         {0.5, 0.6},
	"lovely":       {0.5, 0.75},
	"nice":         {0.6, 1.0},
	"perfect":      {1.0, 1.0},
	"poor":         {-0.4, 0.6},
	"sad":          {-0.5, 1.0},
	"simple":       {0.0, 0.357},
	"slow":         {-0.3, 0.4},
	"stupid":       {-0.8, 1.0},
	"terrible":     {-1.0, 1.0},
	"thanks":       {0.2, 0.2},
	"ugly":         {-0.7, 1.0},
	"useful":       {0.3, 0.0},
	"useless":      {-0.5, 0.0},
	"weird":        {-0.5, 1.0},
	"wonderful":    {1.0, 1.0},
	"worse":        {-0.4, 0.6},
	"worst":        {-1.0, 1.0},
	"wrong":        {-0.5, 0.9},
}

var intensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"extremely":  1.5,
	"super":      1.3,
	"so":         1.2,
	"incredibly": 1.5,
	"quite":      1.1,
	"slightly":   0.5,
	"somewhat":   0.7,
}

var negators = map[string]struct{}{
	"not":     {},
	"no":      {},
	"never":   {},
	"don't":   {},
	"doesn't": {},
	"didn't":  {},
	"isn't":   {},
	"wasn't":  {},
	"aren't":  {},
	"can't":   {},
	"won't":   {},
}

// Tokens shorter than three characters never reach this set.
var stopwords = func() map[string]struct{} {
	words := []string{
		"about", "after", "again", "all", "also", "and", "any", "are", "because", "been",
		"before", "being", "but", "can", "could", "did", "does", "doing", "don", "down",
		"each", "even", "few", "for", "from", "get", "going", "gonna", "got", "had", "has",
		"have", "having", "her", "here", "hers", "him", "his", "how", "into", "its", "just",
		"know", "like", "let", "more", "most", "much", "not", "now", "off", "once", "one",
		"only", "other", "our", "out", "over", "own", "really", "right", "same", "see",
		"she", "should", "some", "such", "than", "that", "the", "their", "them", "then",
		"there", "these", "they", "thing", "things", "think", "this", "those", "through",
		"too", "under", "until", "very", "want", "was", "way", "well", "were", "what",
		"when", "where", "which", "while", "who", "whom", "why", "will", "with", "would",
		"yeah", "you", "your", "yours",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()
