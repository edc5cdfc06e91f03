package nlp

// defaultLexicon maps lemmatized tokens to valence ratings on the usual
// [-4, 4] sentiment-lexicon scale. It is intentionally small; the in-memory
// analyzer exists to exercise the pipeline, not to compete with a real model.
var defaultLexicon = map[string]float64{
	// positive
	"love":      3.2,
	"loved":     2.9,
	"happy":     2.7,
	"happiness": 2.6,
	"beautiful": 2.9,
	"good":      1.9,
	"great":     3.1,
	"best":      3.2,
	"joy":       2.8,
	"hope":      1.9,
	"hopeful":   2.0,
	"success":   2.7,
	"succeed":   2.4,
	"motivated": 2.3,
	"proud":     2.2,
	"calm":      1.3,
	"excited":   2.3,
	"wonderful": 2.7,
	"grateful":  2.3,
	"win":       2.8,
	"winner":    2.8,
	"friend":    2.2,
	"smile":     2.1,
	"peace":     2.5,
	"peaceful":  2.4,
	"strong":    2.3,
	"dream":     1.6,
	"achieve":   2.1,
	"bright":    1.9,

	// negative
	"hate":      -2.7,
	"hated":     -2.9,
	"sad":       -2.1,
	"sadness":   -2.1,
	"terrible":  -2.1,
	"awful":     -2.5,
	"worst":     -3.1,
	"miserable": -2.7,
	"depressed": -2.8,
	"hopeless":  -2.6,
	"worthless": -2.7,
	"lonely":    -1.8,
	"cry":       -2.2,
	"fail":      -2.3,
	"failure":   -2.4,
	"angry":     -2.3,
	"fear":      -2.2,
	"afraid":    -2.0,
	"hurt":      -2.4,
	"pain":      -2.3,
	"kill":      -3.4,
	"killed":    -3.4,
	"die":       -2.9,
	"dead":      -3.3,
	"death":     -2.9,
	"destroy":   -2.6,
	"massacre":  -3.1,
	"slaughter": -3.0,
	"violence":  -3.1,
	"violent":   -2.9,
	"suicide":   -3.5,
	"drug":      -1.9,
	"drunk":     -1.9,
	"weapon":    -2.2,
	"gun":       -2.1,
	"knife":     -1.5,
	"bomb":      -3.0,
	"blood":     -1.3,
	"fight":     -1.6,
	"revenge":   -2.4,
	"threat":    -2.4,
	"nightmare": -2.5,
}

// defaultStopwords is a compact English stopword set used by the in-memory
// normalizer. External normalizers bring their own.
var defaultStopwords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "again": {}, "all": {}, "am": {},
	"an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"because": {}, "been": {}, "before": {}, "being": {}, "but": {}, "by": {},
	"can": {}, "could": {}, "did": {}, "do": {}, "does": {}, "doing": {},
	"down": {}, "during": {}, "each": {}, "few": {}, "for": {}, "from": {},
	"further": {}, "had": {}, "has": {}, "have": {}, "having": {}, "he": {},
	"her": {}, "here": {}, "hers": {}, "him": {}, "his": {}, "how": {},
	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"just": {}, "me": {}, "more": {}, "most": {}, "my": {}, "myself": {},
	"no": {}, "nor": {}, "now": {}, "of": {}, "off": {}, "on": {}, "once": {},
	"only": {}, "or": {}, "other": {}, "our": {}, "ours": {}, "out": {},
	"over": {}, "own": {}, "same": {}, "she": {}, "so": {}, "some": {},
	"such": {}, "than": {}, "that": {}, "the": {}, "their": {}, "theirs": {},
	"them": {}, "then": {}, "there": {}, "these": {}, "they": {}, "this": {},
	"those": {}, "through": {}, "to": {}, "too": {}, "under": {}, "until": {},
	"up": {}, "very": {}, "was": {}, "we": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "who": {}, "whom": {},
	"why": {}, "will": {}, "with": {}, "you": {}, "your": {}, "yours": {},
	"yourself": {},
}
