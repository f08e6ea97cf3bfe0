package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type User struct {
	ID       uint
	Username string
}
type Dokumen struct {
	ID           uint
	UserID       uint
	KodeTps      string
	Jenis        string
	FileName     string
	StorePath    string
	Hasil        []byte
	Failed       bool
	FailedReason string
}

func (Dokumen) TableName() string { return "dokumens" }

func main() {
	username := flag.String("username", "", "username")
	file := flag.String("file", "", "file name")
	flag.Parse()
	if *username == "" || *file == "" {
		log.Fatal("--username and --file required")
	}
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in env")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	var u User
	if err := db.Where("username = ?", *username).First(&u).Error; err != nil {
		log.Fatalf("user: %v", err)
	}
	var d Dokumen
	err = db.Where("user_id = ? AND file_name = ?", u.ID, *file).Order("id desc").First(&d).Error
	if err != nil {
		log.Fatalf("dokumen: %v", err)
	}
	fmt.Printf("dokumen id=%d kode_tps=%s jenis=%s failed=%v reason=%q store=%s\n", d.ID, d.KodeTps, d.Jenis, d.Failed, d.FailedReason, d.StorePath)
	if len(d.Hasil) > 0 {
		fmt.Printf("hasil=%s\n", d.Hasil)
	}
}
