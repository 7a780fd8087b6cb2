package topics

import (
	"math"
	"sort"
	"strings"
)

// topKeywordCount is how many keywords each topic keeps.
const topKeywordCount = 10

// minTokenLength drops noise tokens before scoring.
const minTokenLength = 3

// minCorpusFrequency drops tokens that appear fewer times across the
// whole corpus, mirroring a min_df vectorizer cutoff.
const minCorpusFrequency = 2

// topicKeywords scores tokens per topic with class-based TF-IDF: term
// frequency within the topic's merged documents, weighted by how rare
// the term is across all topics. Returns the top keywords per topic id.
func topicKeywords(texts []string, topicIDs []int, topN int) map[int][]string {
	classCounts := make(map[int]map[string]int)
	corpusCounts := make(map[string]int)
	totalTokens := 0

	for i, text := range texts {
		topic := topicIDs[i]
		class := classCounts[topic]
		if class == nil {
			class = make(map[string]int)
			classCounts[topic] = class
		}
		for _, token := range strings.Fields(text) {
			if len(token) < minTokenLength {
				continue
			}
			class[token]++
			corpusCounts[token]++
			totalTokens++
		}
	}

	if len(classCounts) == 0 {
		return nil
	}
	avgClassSize := float64(totalTokens) / float64(len(classCounts))

	keywords := make(map[int][]string, len(classCounts))
	for topic, class := range classCounts {
		type scoredToken struct {
			token string
			score float64
		}
		scored := make([]scoredToken, 0, len(class))
		for token, count := range class {
			if corpusCounts[token] < minCorpusFrequency {
				continue
			}
			idf := math.Log(1 + avgClassSize/float64(corpusCounts[token]))
			scored = append(scored, scoredToken{token: token, score: float64(count) * idf})
		}
		sort.Slice(scored, func(i, j int) bool {
			if scored[i].score != scored[j].score {
				return scored[i].score > scored[j].score
			}
			return scored[i].token < scored[j].token
		})
		if len(scored) > topN {
			scored = scored[:topN]
		}
		tokens := make([]string, len(scored))
		for i, s := range scored {
			tokens[i] = s.token
		}
		keywords[topic] = tokens
	}

	return keywords
}
