// cmd/career-cli/recommend.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"career-workers/internal/catalog"
	"career-workers/internal/common/logger"
	"career-workers/internal/recommendation"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank a catalog file for a student record file",
	Long:  "Runs the scoring engine locally against a student record JSON file and a career catalog JSON array, printing the ranked careers.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRecommend(cmd.Context(), cmd.OutOrStdout(), recommendFlags)
	},
}

type recommendOptions struct {
	student string
	catalog string
	strict  bool
	limit   int
	json    bool
}

var recommendFlags recommendOptions

func init() {
	recommendCmd.Flags().StringVarP(&recommendFlags.student, "student", "s", "", "Path to student record JSON (required)")
	recommendCmd.Flags().StringVarP(&recommendFlags.catalog, "catalog", "c", "", "Path to career catalog JSON (required)")
	recommendCmd.Flags().BoolVar(&recommendFlags.strict, "strict", false, "Reject unknown grade symbols")
	recommendCmd.Flags().IntVarP(&recommendFlags.limit, "limit", "n", recommendation.ResponseLimit, "Maximum careers to print")
	recommendCmd.Flags().BoolVar(&recommendFlags.json, "json", false, "Print the response as JSON")
	markRequired(recommendCmd, "student", "catalog")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(ctx context.Context, w io.Writer, opts recommendOptions) error {
	raw, err := os.ReadFile(opts.student)
	if err != nil {
		return fmt.Errorf("failed to read student file %s: %w", opts.student, err)
	}
	student, err := recommendation.DecodeStudent(raw)
	if err != nil {
		return err
	}

	careers, err := readCatalog(opts.catalog)
	if err != nil {
		return err
	}

	engine := recommendation.NewEngine(recommendation.Options{StrictGrades: opts.strict}, logger.NewNoOpLogger())
	result, err := engine.Recommend(ctx, student, careers)
	if err != nil {
		return err
	}
	resp := recommendation.BuildResponse(student, result, careers, opts.limit)

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	printResponse(w, resp, len(result.Matches))
	return nil
}

func readCatalog(path string) ([]recommendation.Career, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer f.Close()

	careers, err := catalog.Decode(f)
	if err != nil {
		return nil, err
	}
	if err := catalog.Validate(careers); err != nil {
		return nil, err
	}
	return careers, nil
}

func printResponse(w io.Writer, resp recommendation.Response, total int) {
	fmt.Fprintln(w, titleStyle.Render("Career Recommendations"))
	fmt.Fprintf(w, "%s %s (%.1f points)\n", labelStyle.Render("Mean grade:"), valueStyle.Render(resp.StudentInfo.MeanGrade), resp.StudentInfo.MeanPoints)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Strengths:"), valueStyle.Render(strings.Join(resp.StudentInfo.Strengths, ", ")))
	fmt.Fprintf(w, "%s %d\n\n", labelStyle.Render("Matches:"), total)

	if len(resp.Recommendations) == 0 {
		fmt.Fprintln(w, valueStyle.Render("No career reached the match cutoff."))
		return
	}
	for i, r := range resp.Recommendations {
		fmt.Fprintf(w, "%2d. %s%% %s\n", i+1, scoreStyle.Render(fmt.Sprint(r.Match)), labelStyle.Render(r.Title))
		for _, reason := range r.Reasons {
			fmt.Fprintf(w, "       %s\n", valueStyle.Render(reason))
		}
	}
}
