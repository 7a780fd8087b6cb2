// Package checkpoint locates trained model checkpoints by the performance
// score embedded in their directory names.
package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultPrefix is the directory-name prefix of checkpoints trained on the
// custom dataset.
const DefaultPrefix = "fast_lcf_atepc_custom_dataset"

// artifactFiles are the files a loadable trained checkpoint must contain.
var artifactFiles = []string{
	"fast_lcf_atepc.config",
	"fast_lcf_atepc.state_dict",
	"fast_lcf_atepc.tokenizer",
}

var (
	apcF1Re  = regexp.MustCompile(`apcf1_(\d+\.\d+)`)
	apcAccRe = regexp.MustCompile(`apcacc_(\d+\.\d+)`)
)

// Descriptor identifies one checkpoint directory and its parsed score.
type Descriptor struct {
	Dir   string  `json:"dir"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// ScoreFromName extracts the APC F1 score embedded in a checkpoint name.
// Names without a parseable score yield 0.0, so they are only ever selected
// when nothing better exists.
func ScoreFromName(name string) float64 {
	return parseScore(apcF1Re, name)
}

// AccuracyFromName extracts the APC accuracy embedded in a checkpoint name.
func AccuracyFromName(name string) float64 {
	return parseScore(apcAccRe, name)
}

func parseScore(re *regexp.Regexp, name string) float64 {
	m := re.FindStringSubmatch(name)
	if m == nil {
		return 0.0
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0.0
	}
	return score
}

// SelectBest returns the highest-scoring checkpoint directory under dir
// whose name starts with prefix, ranked by the apcf1 value in the name.
// A missing directory or an empty candidate set is an error.
func SelectBest(dir, prefix string) (*Descriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoints directory: %w", err)
	}

	var found []Descriptor
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		found = append(found, Descriptor{
			Dir:   filepath.Join(dir, e.Name()),
			Name:  e.Name(),
			Score: ScoreFromName(e.Name()),
		})
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no checkpoint directories with prefix %q in %s", prefix, dir)
	}

	sortByScore(found)
	best := found[0]
	return &best, nil
}

// SelectBestTrained returns the best fully-trained checkpoint under dir,
// ranked by the apcacc value in the name. A candidate must mention
// fast_lcf_atepc plus one of the custom-dataset markers in its name and
// contain all three model artifact files.
func SelectBestTrained(dir string) (*Descriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoints directory: %w", err)
	}

	var found []Descriptor
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if !strings.Contains(name, "fast_lcf_atepc") {
			continue
		}
		if !strings.Contains(name, "custom") &&
			!strings.Contains(name, "cybersecurity") &&
			!strings.Contains(name, "dataset") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !hasArtifacts(path) {
			continue
		}
		found = append(found, Descriptor{
			Dir:   path,
			Name:  e.Name(),
			Score: AccuracyFromName(e.Name()),
		})
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no trained checkpoint with model artifacts in %s", dir)
	}

	sortByScore(found)
	best := found[0]
	return &best, nil
}

func hasArtifacts(dir string) bool {
	for _, name := range artifactFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

// sortByScore orders descriptors best first; the stable sort keeps the
// lexical directory order for equal scores.
func sortByScore(ds []Descriptor) {
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].Score > ds[j].Score })
}
