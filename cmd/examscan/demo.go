package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nexus-edu/examscan/exam"
	"github.com/nexus-edu/examscan/omr/omrtest"
	"github.com/nexus-edu/examscan/pipeline"
	"github.com/nexus-edu/examscan/rectify"
)

// runDemo prints a row, fills a sheet for it with a few deliberate
// mistakes, photographs it at an angle and grades the photo.
func runDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	var (
		output  = fs.String("out", "demo.png", "save the synthetic photo here")
		seed    = fs.String("seed", "nexus-2024", "evaluation seed word")
		n       = fs.Int("n", 12, "number of questions")
		workers = fs.Int("workers", 1, "rectification goroutines")
		verbose = fs.Bool("v", false, "log diagnostics to stderr")
	)
	_ = fs.Parse(args)
	enableLogging(*verbose)

	qs := demoQuestions(*n)
	row, err := generateRow(qs, *seed, "A", 4)
	if err != nil {
		return err
	}
	fmt.Printf("Row A key: %s\n", row.Letters())

	spec := omrtest.Layout(*n, 4, 600, 800)
	key := row.Key()
	selected := make(map[string]int, len(key))
	for i, q := range qs {
		s := key[q.ID]
		switch i % 5 {
		case 3:
			s = (s + 1) % 4 // wrong answer
		case 4:
			s = -1 // left blank
		}
		selected[q.ID] = s
	}
	sheet := omrtest.Render(spec, omrtest.Marks(selected))

	corners := rectify.Quad{{60, 50}, {690, 80}, {720, 930}, {30, 900}}
	photo, err := omrtest.Photograph(sheet, corners, 760, 980)
	if err != nil {
		return err
	}
	if err := photo.SavePNG(*output); err != nil {
		return err
	}
	log.Printf("Photo saved to %s (%dx%d)", *output, photo.Width(), photo.Height())

	rep, err := pipeline.NewGrader(pipeline.WithWorkers(*workers)).GradeRow(photo, corners, spec, row)
	if err != nil {
		return err
	}
	printReport(os.Stdout, message.NewPrinter(language.English), rep.Result, key)
	return nil
}

// demoQuestions builds n four-option questions whose correct option cycles
// through the original positions.
func demoQuestions(n int) []exam.Question {
	qs := make([]exam.Question, n)
	for i := range qs {
		opts := make([]exam.Option, 4)
		for j := range opts {
			opts[j] = exam.Option{Text: fmt.Sprintf("option %d", j+1), Correct: j == i%4}
		}
		qs[i] = exam.Question{ID: fmt.Sprintf("q%d", i+1), Options: opts}
	}
	return qs
}
