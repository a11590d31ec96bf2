package reduce

import (
	"math/rand"
)

// Topic model parameters. Topic modeling needs enough documents to be
// stable: batches at or below MinTopicDocs skip it and report nil
// distributions. Factorization has no such floor.
const (
	TopicCount   = 20
	MinTopicDocs = 10
)

// TopicConfig controls the collapsed Gibbs sampler.
type TopicConfig struct {
	Alpha      float64 // document-topic prior
	Beta       float64 // topic-term prior
	Iterations int
	Seed       int64
}

// DefaultTopicConfig returns the sampler defaults.
func DefaultTopicConfig() TopicConfig {
	return TopicConfig{Alpha: 0.1, Beta: 0.01, Iterations: 50, Seed: 1}
}

// Topics fits a TopicCount-topic model over the term count matrix via
// collapsed Gibbs sampling and returns one topic distribution per record.
// Returns nil (not an error) when the batch is too small: callers report
// a null distribution for every record.
func Topics(counts [][]float64, cfg TopicConfig) [][]float64 {
	n := len(counts)
	if n <= MinTopicDocs {
		return nil
	}
	if cfg.Iterations <= 0 {
		cfg = DefaultTopicConfig()
	}

	vocab := len(counts[0])
	rng := rand.New(rand.NewSource(cfg.Seed))

	// Expand counts into token occurrence lists.
	type token struct {
		doc, term, topic int
	}
	var tokens []token
	for d, row := range counts {
		for t, c := range row {
			for k := 0; k < int(c); k++ {
				tokens = append(tokens, token{doc: d, term: t})
			}
		}
	}
	if len(tokens) == 0 {
		return uniformTopics(n)
	}

	docTopic := make([][]int, n)
	for d := range docTopic {
		docTopic[d] = make([]int, TopicCount)
	}
	topicTerm := make([][]int, TopicCount)
	for k := range topicTerm {
		topicTerm[k] = make([]int, vocab)
	}
	topicTotal := make([]int, TopicCount)

	for i := range tokens {
		z := rng.Intn(TopicCount)
		tokens[i].topic = z
		docTopic[tokens[i].doc][z]++
		topicTerm[z][tokens[i].term]++
		topicTotal[z]++
	}

	probs := make([]float64, TopicCount)
	vBeta := float64(vocab) * cfg.Beta

	for iter := 0; iter < cfg.Iterations; iter++ {
		for i := range tokens {
			tok := &tokens[i]
			z := tok.topic
			docTopic[tok.doc][z]--
			topicTerm[z][tok.term]--
			topicTotal[z]--

			sum := 0.0
			for k := 0; k < TopicCount; k++ {
				p := (float64(docTopic[tok.doc][k]) + cfg.Alpha) *
					(float64(topicTerm[k][tok.term]) + cfg.Beta) /
					(float64(topicTotal[k]) + vBeta)
				probs[k] = p
				sum += p
			}

			r := rng.Float64() * sum
			next := TopicCount - 1
			for k := 0; k < TopicCount; k++ {
				r -= probs[k]
				if r <= 0 {
					next = k
					break
				}
			}

			tok.topic = next
			docTopic[tok.doc][next]++
			topicTerm[next][tok.term]++
			topicTotal[next]++
		}
	}

	// Normalize document-topic counts into distributions.
	out := make([][]float64, n)
	for d := 0; d < n; d++ {
		dist := make([]float64, TopicCount)
		total := 0
		for k := 0; k < TopicCount; k++ {
			total += docTopic[d][k]
		}
		for k := 0; k < TopicCount; k++ {
			dist[k] = (float64(docTopic[d][k]) + cfg.Alpha) /
				(float64(total) + float64(TopicCount)*cfg.Alpha)
		}
		out[d] = dist
	}
	return out
}

func uniformTopics(n int) [][]float64 {
	out := make([][]float64, n)
	for d := range out {
		dist := make([]float64, TopicCount)
		for k := range dist {
			dist[k] = 1.0 / TopicCount
		}
		out[d] = dist
	}
	return out
}
