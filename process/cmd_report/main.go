package main

import (
	"flag"
	"fmt"
	"os"

	"be04/process/report"
)

func main() {
	kodeTps := flag.String("kode-tps", "", "TPS code to report for")
	month := flag.String("month", "2025-08", "month to report (YYYY-MM)")
	list := flag.Bool("list", false, "list matching rows")
	flag.Parse()

	if *kodeTps == "" {
		fmt.Fprintln(os.Stderr, "usage: cmd_report --kode-tps <code> [--month YYYY-MM] [--list]")
		os.Exit(2)
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "DB_DSN not set; export DB_DSN and retry")
		os.Exit(2)
	}

	report.RunReport(*kodeTps, *month, *list)
}
