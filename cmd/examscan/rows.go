package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nexus-edu/examscan/exam"
)

func runRows(args []string) error {
	fs := flag.NewFlagSet("rows", flag.ExitOnError)
	var (
		questions = fs.String("questions", "", "questions JSON file")
		seed      = fs.String("seed", "", "evaluation seed word")
		rows      = fs.String("rows", "A", "comma-separated row labels")
		options   = fs.Int("options", 4, "letters to balance the key over")
		output    = fs.String("out", "", "write the rows as JSON to this file")
		verbose   = fs.Bool("v", false, "log diagnostics to stderr")
	)
	_ = fs.Parse(args)
	enableLogging(*verbose)

	if *questions == "" || *seed == "" {
		return errors.New("-questions and -seed are required")
	}
	qs, err := loadQuestions(*questions)
	if err != nil {
		return err
	}

	var out []*exam.Row
	for _, label := range strings.Split(*rows, ",") {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		row, err := generateRow(qs, *seed, label, *options)
		if err != nil {
			return fmt.Errorf("row %s: %w", label, err)
		}
		fmt.Printf("%-4s %s  swaps=%d streak_fixes=%d balanced=%v\n",
			row.Label, row.Letters(), row.Report.Swaps, row.Report.StreakFixes, row.Report.Balanced)
		if len(row.Report.Skipped) > 0 {
			fmt.Printf("     skipped: %s\n", strings.Join(row.Report.Skipped, ", "))
		}
		out = append(out, row)
	}

	if *output == "" {
		return nil
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		return err
	}
	log.Printf("Rows saved to %s", *output)
	return nil
}
