package topics

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/cyberabsa/internal/model"
)

// OutlierTopic is the id assigned to documents whose cluster fell below
// the minimum topic size.
const OutlierTopic = -1

// Assignment is one document's topic id and membership strength,
// aligned with the input document order.
type Assignment struct {
	TopicID     int     `json:"topic_id"`
	Probability float64 `json:"probability"`
}

// TopicInfo summarizes one discovered topic.
type TopicInfo struct {
	ID       int      `json:"id"`
	Size     int      `json:"size"`
	Keywords []string `json:"keywords"`
}

// Name renders the topic as an id_keyword slug, the naming convention
// topic modeling tools use in their topic_info tables.
func (t TopicInfo) Name() string {
	parts := t.Keywords
	if len(parts) > 4 {
		parts = parts[:4]
	}
	if len(parts) == 0 {
		return strconv.Itoa(t.ID)
	}
	return fmt.Sprintf("%d_%s", t.ID, strings.Join(parts, "_"))
}

// Result holds one topic discovery run.
type Result struct {
	Assignments []Assignment `json:"assignments"`
	Topics      []TopicInfo  `json:"topics"`
}

// Discover embeds the documents' clean text and clusters the vectors.
// Clusters smaller than MinTopicSize fold into the outlier topic, and
// surviving clusters get dense ids ordered by size, largest first.
func Discover(ctx context.Context, embedder Embedder, docs []model.Document, config Config) (*Result, error) {
	if len(docs) == 0 {
		return &Result{}, nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.CleanText
	}

	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed documents: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(texts))
	}

	k := config.K
	if k <= 0 {
		k = DefaultConfig().K
	}
	clustered := runKMeans(vectors, k)

	minSize := config.MinTopicSize
	if minSize < 1 {
		minSize = 1
	}

	clusterSizes := make(map[int]int)
	for _, cluster := range clustered.assignments {
		clusterSizes[cluster]++
	}

	type sizedCluster struct {
		cluster int
		size    int
	}
	survivors := make([]sizedCluster, 0, len(clusterSizes))
	for cluster, size := range clusterSizes {
		if size >= minSize {
			survivors = append(survivors, sizedCluster{cluster: cluster, size: size})
		}
	}
	sort.Slice(survivors, func(i, j int) bool {
		if survivors[i].size != survivors[j].size {
			return survivors[i].size > survivors[j].size
		}
		return survivors[i].cluster < survivors[j].cluster
	})
	topicOf := make(map[int]int, len(survivors))
	for rank, sc := range survivors {
		topicOf[sc.cluster] = rank
	}

	assignments := make([]Assignment, len(docs))
	finalIDs := make([]int, len(docs))
	for i, cluster := range clustered.assignments {
		topic, kept := topicOf[cluster]
		if !kept {
			assignments[i] = Assignment{TopicID: OutlierTopic}
			finalIDs[i] = OutlierTopic
			continue
		}
		assignments[i] = Assignment{TopicID: topic, Probability: clamp01(clustered.similarity[i])}
		finalIDs[i] = topic
	}

	keywords := topicKeywords(texts, finalIDs, topKeywordCount)

	finalSizes := make(map[int]int)
	for _, id := range finalIDs {
		finalSizes[id]++
	}
	topics := make([]TopicInfo, 0, len(finalSizes))
	for id, size := range finalSizes {
		topics = append(topics, TopicInfo{ID: id, Size: size, Keywords: keywords[id]})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })

	return &Result{Assignments: assignments, Topics: topics}, nil
}

// Apply stamps the assignments back onto the documents in place.
func Apply(docs []model.Document, result *Result) {
	for i := range docs {
		if i >= len(result.Assignments) {
			break
		}
		docs[i].TopicID = result.Assignments[i].TopicID
		docs[i].TopicProb = result.Assignments[i].Probability
	}
}

// Summaries rebuilds the topic table from documents that already carry
// assignments: sizes per topic id plus fresh keywords over the cleaned
// text. Reporting uses this to avoid rerunning discovery.
func Summaries(docs []model.Document) []TopicInfo {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	ids := make([]int, len(docs))
	for i, doc := range docs {
		texts[i] = doc.CleanText
		ids[i] = doc.TopicID
	}
	keywords := topicKeywords(texts, ids, topKeywordCount)

	sizes := make(map[int]int)
	for _, id := range ids {
		sizes[id]++
	}
	topics := make([]TopicInfo, 0, len(sizes))
	for id, size := range sizes {
		topics = append(topics, TopicInfo{ID: id, Size: size, Keywords: keywords[id]})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })
	return topics
}

// PrintTopics writes the discovered-topic table to w.
func PrintTopics(w io.Writer, topics []TopicInfo) {
	fmt.Fprintln(w, "Discovered topics:")
	for _, topic := range topics {
		fmt.Fprintf(w, "  %4d  %5d  %s\n", topic.ID, topic.Size, topic.Name())
	}
}

// WriteTopicInfoCSV writes the per-topic summary table.
func WriteTopicInfoCSV(path string, topics []TopicInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create topic info file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"topic", "size", "name", "keywords"}); err != nil {
		return fmt.Errorf("write topic info header: %w", err)
	}
	for _, topic := range topics {
		row := []string{
			strconv.Itoa(topic.ID),
			strconv.Itoa(topic.Size),
			topic.Name(),
			strings.Join(topic.Keywords, "; "),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write topic info row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush topic info file: %w", err)
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
