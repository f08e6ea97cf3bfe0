package report

import (
	"fmt"
	"log"
	"os"
	"time"

	"be04/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mustDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

// RunReport prints a month-bounded extraction report for a TPS code (month in
// YYYY-MM) and optionally lists matching dokumen rows.
func RunReport(kodeTps, month string, list bool) {
	gdb := mustDBFromEnv()

	t, err := time.Parse("2006-01", month)
	if err != nil {
		log.Fatalf("invalid month format, expected YYYY-MM: %v", err)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	type row struct {
		Jenis  string
		Cnt    int64
		Failed int64
	}
	var rows []row
	if err := gdb.Raw(`SELECT jenis, COUNT(*) AS cnt, COUNT(*) FILTER (WHERE failed) AS failed
		FROM dokumens WHERE kode_tps = ? AND created_at >= ? AND created_at < ?
		GROUP BY jenis ORDER BY jenis`, kodeTps, start, end).Scan(&rows).Error; err != nil {
		log.Fatalf("query failed: %v", err)
	}

	fmt.Printf("Report for kode_tps=%s month=%s (UTC):\n", kodeTps, month)
	for _, r := range rows {
		fmt.Printf("  jenis=%s records=%d failed=%d\n", r.Jenis, r.Cnt, r.Failed)
	}
	if len(rows) == 0 {
		fmt.Println("  no records")
	}

	if list {
		var doks []models.Dokumen
		if err := gdb.Where("kode_tps = ? AND created_at >= ? AND created_at < ?", kodeTps, start, end).Order("id").Find(&doks).Error; err != nil {
			log.Fatalf("fetch rows failed: %v", err)
		}
		for _, d := range doks {
			status := "ok"
			if d.Failed {
				status = "failed: " + d.FailedReason
			}
			fmt.Printf("%d|%s|%s|%s|%s\n", d.ID, d.Jenis, d.FileName, status, d.CreatedAt.Format(time.RFC3339))
		}
	}
}
