// Scratch program to exercise the lexicon baseline end to end.
// Runs aspect extraction, window sentiment and IOB tagging over fixed
// sample texts without any network access or stored corpus.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/cyberabsa/internal/absa"
	"github.com/ppiankov/cyberabsa/internal/predict"
)

func main() {
	fmt.Println("=== Lexicon Baseline Smoke Test ===")
	fmt.Println()

	texts := []string{
		"The firewall blocked the attack effectively and the patch was deployed quickly",
		"Ransomware encrypted the file servers and the backup failed",
		"The vulnerability was reported through the coordinated disclosure program",
		"Multi-factor authentication improved security after the breach",
	}

	p, err := predict.New(predict.Config{Backend: "lexicon"}, "lexicon-baseline")
	if err != nil {
		fmt.Printf("predictor init failed: %v\n", err)
		return
	}

	ctx := context.Background()
	for _, text := range texts {
		fmt.Printf("Text: %s\n", text)
		fmt.Println(strings.Repeat("-", 60))

		matches := absa.FindAspects(text)
		fmt.Printf("  Aspect matches: %d\n", len(matches))

		analysis := predict.Analyze(ctx, p, text)
		if analysis.Error != "" {
			fmt.Printf("  Error: %s\n", analysis.Error)
		}
		for _, aspect := range analysis.Aspects {
			fmt.Printf("  - %s: %s (confidence %v)\n", aspect.Aspect, aspect.Sentiment, aspect.Confidence)
		}

		tagged := absa.BuildLabeled(text, matches, absa.DefaultWindow)
		fmt.Printf("  Tagged tokens: %d\n", len(tagged.Tokens))
		fmt.Println()
	}

	fmt.Println("=== Smoke Test Complete ===")
	fmt.Println()
	fmt.Println("The lexicon baseline is deterministic and needs no checkpoints.")
	fmt.Println("Use 'cyberabsa evaluate' against a built dataset for real metrics.")
}
