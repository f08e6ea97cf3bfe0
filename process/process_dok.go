package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"be04/models"
	"be04/pkg/pabean"
	"be04/pkg/pdftext"
)

// Global DB handle for helper funcs
var db *gorm.DB

// global flags (parsed in main)
var (
	verbose bool
	variant pabean.Variant
)

// preload caches
type preloadState struct {
	dokByFile map[string]*models.Dokumen // fileName -> dokumen
	mu        sync.RWMutex
}

func newPreloadState() *preloadState {
	return &preloadState{dokByFile: make(map[string]*models.Dokumen, 1024)}
}

func (ps *preloadState) getDok(name string) (*models.Dokumen, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	d, ok := ps.dokByFile[name]
	return d, ok
}
func (ps *preloadState) putDok(d *models.Dokumen) {
	ps.mu.Lock()
	ps.dokByFile[d.FileName] = d
	ps.mu.Unlock()
}

func mustInitDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatalf("DB_DSN must be set in environment to run this tool")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return gdb
}

// Main: scans a drop directory of customs PDFs, extracts each one, stores
// Dokumen rows and moves processed files aside. Optional watch mode.
func main() {
	dirFlag := flag.String("dir", "uploads/inbox", "directory to scan for customs PDFs")
	kodeTps := flag.String("kode-tps", "", "TPS code to record on created dokumen rows (required unless --dry-run)")
	userID := flag.Uint("user-id", 0, "User ID to assign dokumen to (if omitted uses admin)")
	dryRun := flag.Bool("dry-run", false, "Skip all DB writes; just list files and run extraction")
	watch := flag.Bool("watch", false, "Watch directory for new files")
	workers := flag.Int("workers", 0, "Worker pool size (default NumCPU)")
	legacy := flag.Bool("legacy", false, "Use the legacy extraction rules")
	flag.BoolVar(&verbose, "verbose", false, "Verbose per-file logging")
	flag.Parse()

	variant = pabean.VariantUtama
	if *legacy {
		variant = pabean.VariantLegacy
	}

	if *dryRun {
		log.Printf("Dry-run: scanning %s (no DB interaction)", *dirFlag)
		files := listPDFFiles(*dirFlag)
		log.Printf("Found %d candidate files", len(files))
		for _, f := range files {
			pages, err := pdftext.Pages(filepath.Join(*dirFlag, f))
			if err != nil {
				log.Printf("READ fail %s: %v", f, err)
				continue
			}
			jenis := detectJenis(pages)
			if jenis == "sppb" {
				res := pabean.ExtractSPPB(pages, variant)
				logV("SPPB %s nomor=%v", f, strptr(resNomor(res)))
				continue
			}
			if _, err := pabean.ExtractPIB(pages, variant); err != nil {
				log.Printf("PIB fail %s: %v", f, err)
			} else {
				logV("PIB ok %s", f)
			}
		}
		return
	}

	if *kodeTps == "" {
		log.Fatalf("--kode-tps is required")
	}

	db = mustInitDBFromEnv()
	uid := resolveUserID(*userID)
	ps := preloadAll(uid, *kodeTps)
	log.Printf("Preloaded: dokumen=%d", len(ps.dokByFile))

	// gather initial file list
	files := listPDFFiles(*dirFlag)
	log.Printf("Scanning %d files (workers=%d)", len(files), effectiveWorkers(*workers))
	runWorkerPool(*dirFlag, uid, *kodeTps, ps, files, effectiveWorkers(*workers))

	if *watch {
		if err := watchDirectory(*dirFlag, uid, *kodeTps, ps, effectiveWorkers(*workers)); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	}
}

func effectiveWorkers(w int) int {
	if w <= 0 {
		return runtime.NumCPU()
	}
	return w
}

func logV(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

func strptr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func resNomor(d *pabean.SPPBData) *string {
	if d == nil || d.Sppb == nil {
		return nil
	}
	return d.Sppb.Nomor
}

// preloadAll fetches existing dokumen rows to minimize per-file queries.
func preloadAll(userID uint, kodeTps string) *preloadState {
	ps := newPreloadState()
	var doks []models.Dokumen
	if err := db.Where("user_id = ? AND kode_tps = ?", userID, kodeTps).Find(&doks).Error; err == nil {
		for i := range doks {
			d := doks[i]
			ps.dokByFile[d.FileName] = &d
		}
	}
	return ps
}

// resolveUserID finds the owning user either by explicit id or by admin username.
func resolveUserID(id uint) uint {
	if id != 0 {
		var u models.User
		if err := db.First(&u, id).Error; err != nil {
			log.Fatalf("failed to find user id %d: %v", id, err)
		}
		return u.ID
	}
	var admin models.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		log.Fatalf("no --user-id provided and admin user not found: %v", err)
	}
	return admin.ID
}

func listPDFFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func watchDirectory(dir string, userID uint, kodeTps string, ps *preloadState, workers int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	fileCh := make(chan string, 256)
	go func() {
		// simple debounce map of pending files
		pending := map[string]time.Time{}
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(fileCh)
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create {
					name := filepath.Base(ev.Name)
					if !isSupportedExt(name) {
						continue
					}
					pending[name] = time.Now()
				}
			case <-ticker.C:
				now := time.Now()
				for name, t := range pending {
					if now.Sub(t) > 300*time.Millisecond { // stable
						fileCh <- name
						delete(pending, name)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					close(fileCh)
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()

	// Use worker pool for watch events too
	go runWorkerPool(dir, userID, kodeTps, ps, nil, workers, fileCh)
	// block forever (Ctrl+C to exit)
	select {}
}

func isSupportedExt(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".pdf"
}

// worker pool orchestrator
func runWorkerPool(dir string, userID uint, kodeTps string, ps *preloadState, initial []string, workers int, extraCh ...<-chan string) {
	fileCh := make(chan string, 1024)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				processSingleFile(dir, name, userID, kodeTps, ps)
			}
		}()
	}
	// feed initial
	go func() {
		for _, f := range initial {
			fileCh <- f
		}
		// also relay from extra channels if provided
		for _, ch := range extraCh {
			go func(c <-chan string) {
				for n := range c {
					fileCh <- n
				}
			}(ch)
		}
		// if no extraCh (scan only) close when done
		if len(extraCh) == 0 {
			close(fileCh)
		}
	}()
	if len(extraCh) == 0 {
		wg.Wait()
	}
}

// detectJenis tells a SPPB apart from a PIB by its heading.
func detectJenis(pages []string) string {
	joined := pabean.JoinPages(pages)
	if strings.Contains(joined, "SURAT PERSETUJUAN PENGELUARAN BARANG") {
		return "sppb"
	}
	return "pib"
}

// processSingleFile extracts one PDF and records the outcome, idempotently.
func processSingleFile(dir, name string, userID uint, kodeTps string, ps *preloadState) {
	filePath := filepath.Join(dir, name)
	storePath := filepath.ToSlash(filepath.Join("documents", kodeTps, name))

	if existing, ok := ps.getDok(name); ok && !existing.Failed {
		logV("SKIP dokumen exists %s", name)
		return
	}

	pages, err := pdftext.Pages(filePath)
	if err != nil {
		log.Printf("READ fail %s: %v", name, err)
		return
	}
	jenis := detectJenis(pages)

	dok := models.Dokumen{
		UserID:    userID,
		KodeTps:   kodeTps,
		Jenis:     jenis,
		FileName:  name,
		StorePath: storePath,
	}

	var result any
	var extractErr error
	if jenis == "sppb" {
		result = pabean.ExtractSPPB(pages, variant)
	} else {
		result, extractErr = pabean.ExtractPIB(pages, variant)
	}
	if extractErr != nil {
		dok.Failed = true
		dok.FailedReason = extractErr.Error()
	} else if b, err := json.Marshal(result); err == nil {
		dok.Hasil = b
	}

	// Re-check and update an earlier failed row instead of duplicating
	if existing, ok := ps.getDok(name); ok {
		dok.ID = existing.ID
		dok.CreatedAt = existing.CreatedAt
		if err := db.Save(&dok).Error; err != nil {
			log.Printf("ERROR update dokumen %s: %v", name, err)
			return
		}
	} else if err := db.Create(&dok).Error; err != nil {
		if isUniqueConstraintError(err) { // race: someone else created
			logV("SKIP race %s", name)
			return
		}
		log.Printf("ERROR create dokumen %s: %v", name, err)
		return
	}
	ps.putDok(&dok)
	if dok.Failed {
		log.Printf("DOKUMEN failed id=%d jenis=%s file=%s reason=%s", dok.ID, jenis, name, dok.FailedReason)
	} else {
		log.Printf("DOKUMEN id=%d jenis=%s file=%s", dok.ID, jenis, name)
	}

	// Move the processed file out of the inbox so new PDFs are processed only once
	if err := moveToProcessed(filePath, name); err != nil {
		log.Printf("WARN failed to move processed file %s: %v", name, err)
	} else {
		logV("moved processed %s", name)
	}
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}

// moveToProcessed moves a file into uploads/processed/<name>.
// It attempts an atomic rename and falls back to copy+remove when necessary.
func moveToProcessed(srcFullPath, name string) error {
	processedDir := filepath.Join("uploads", "processed")
	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(processedDir, name)
	if err := os.Rename(srcFullPath, dst); err == nil {
		return nil
	}
	return copyRemove(srcFullPath, dst)
}

func copyRemove(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	_ = out.Close()
	if err := os.Remove(src); err != nil {
		return err
	}
	return nil
}
