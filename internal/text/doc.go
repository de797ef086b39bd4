// Package text turns raw text into model input for the sentiment domain:
// count and tf-idf vectorizers feeding a classifier, and a rule-based
// lexicon analyzer that scores text directly.
//
// Its kinds are registered with package estimator on import, so artifact
// documents decode through estimator.Decode like any other model.
package text

import "custintel/internal/estimator"

const (
	KindCountVectorizer estimator.Kind = "count_vectorizer"
	KindTfidfVectorizer estimator.Kind = "tfidf_vectorizer"
	KindVaderLexicon    estimator.Kind = "vader_lexicon"
)

func init() {
	estimator.RegisterType[CountVectorizer](KindCountVectorizer)
	estimator.RegisterType[TfidfVectorizer](KindTfidfVectorizer)
	estimator.RegisterType[LexiconAnalyzer](KindVaderLexicon)
}
