//go:build ignore
// +build ignore

// This script reads and displays the contents of an Excel report for verification.
// Run with: go run scripts/read_excel.go [path]
package main

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	path := "sample_envcheck_report.xlsx"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer f.Close()

	fmt.Println("Sheets:", f.GetSheetList())
	fmt.Println()

	for _, sheet := range f.GetSheetList() {
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  %s\n", sheet)
		fmt.Println("═══════════════════════════════════════")

		rows, err := f.GetRows(sheet)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		for i, row := range rows {
			if len(row) == 0 {
				continue
			}
			fmt.Printf("  %3d", i+1)
			for _, cell := range row {
				fmt.Printf(" | %-22s", cell)
			}
			fmt.Println()
		}
		fmt.Println()
	}
}
