// Package exam generates printable exam versions ("rows") from a seed.
//
// A row shuffles the alternatives of every question independently, then
// repairs the answer key so that each letter appears about equally often and
// no letter appears four times in a row. The same questions, base seed and
// row label always produce the same row, which is how a scanned sheet is
// graded long after it was printed:
//
//	row, err := exam.GenerateRow(questions, "nexus-2024", "A", 4)
//	if err != nil {
//		return err
//	}
//	fmt.Println(row.Letters()) // e.g. "BCCCDDDBAABA"
//
// Hash and Rand are frozen: they define every answer key ever printed.
package exam
