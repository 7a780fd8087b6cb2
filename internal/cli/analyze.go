package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/cyberabsa/internal/predict"
)

var analyzeJSON bool

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze aspect sentiment in a single text",
	Long: `Analyze one text with the configured sentiment model and print the
detected aspects with their sentiment and confidence.

Example:
  cyberabsa analyze "The firewall blocked the attack effectively"
  cyberabsa analyze --json "Ransomware encrypted the backup servers"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the analysis as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, _, err := newPredictor(cfg, false)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	analysis := predict.Analyze(context.Background(), p, text)

	if analyzeJSON {
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("encode analysis: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if analysis.Error != "" {
		return fmt.Errorf("analyze: %s", analysis.Error)
	}

	fmt.Printf("Text: %s\n", analysis.Text)
	if len(analysis.Aspects) == 0 {
		fmt.Println("No aspects detected.")
		return nil
	}
	fmt.Println("Aspects:")
	for _, aspect := range analysis.Aspects {
		fmt.Printf("  - %s: %s (Confidence: %v)\n", aspect.Aspect, aspect.Sentiment, aspect.Confidence)
	}
	return nil
}
