package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"be04/models"
	"be04/pkg/pabean"
	"be04/pkg/pdftext"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/revoke_refresh", revokeRefreshHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.POST("/extract", extractHandler)
	authGroup.GET("/dokumen", listDokumenHandler)
	authGroup.GET("/dokumen/:id", getDokumenHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		c.Set("username", username)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing username"})
		return
	}
	username := usernameVal.(string)
	c.JSON(http.StatusOK, gin.H{"username": username})
}

// getUserFromContext fetches the currently authenticated user using the username set by jwtAuthMiddleware
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	unameVal, _ := c.Get("username")
	if unameVal == nil {
		return nil, false
	}
	uname := unameVal.(string)
	var user models.User
	if err := db.Where("username = ?", uname).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := Register(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	// Generate JWT token. Resolve role name from RoleID (we only store role_id now).
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// create refresh token
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString, "refresh_token": refreshToken})
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash with expiry and returns the raw token string
func createAndStoreRefreshToken(userID uint) (string, error) {
	// generate random 32-byte token (hex)
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	// hash for storage
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	rt := models.RefreshToken{UserID: userID, TokenHash: th, ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

// helper to find refresh token record by raw token string
func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", th).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	// load user
	var user models.User
	if err := db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	// create access token
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate refresh token: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
func revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}

// extractHandler receives one PIB and one or more SPPB PDFs, stores them under
// the TPS folder, runs extraction on each and returns the combined result.
func extractHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	kodeTps := c.PostForm("kode_tps")
	jumlahSppb, _ := strconv.Atoi(c.PostForm("jumlah_sppb"))

	variant := pabean.VariantUtama
	if c.PostForm("format") == "legacy" {
		variant = pabean.VariantLegacy
	}

	pibFile, err := c.FormFile("file_pib")
	if err != nil {
		pibFile = nil
	}

	// collect file_sppb_1 .. file_sppb_N
	var sppbFiles []*multipart.FileHeader
	for i := 1; i <= jumlahSppb; i++ {
		if f, err := c.FormFile(fmt.Sprintf("file_sppb_%d", i)); err == nil {
			sppbFiles = append(sppbFiles, f)
		}
	}

	if kodeTps == "" || pibFile == nil || len(sppbFiles) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  false,
			"message": "kode_tps, file_pib, dan file_sppb wajib dikirim",
			"pib":     nil,
			"sppb":    nil,
		})
		return
	}

	baseDir := filepath.Join(uploadBaseDir(), "documents", kodeTps)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		extractFailed(c, fmt.Errorf("mkdir %s: %w", baseDir, err))
		return
	}

	pibPath := filepath.Join(baseDir, filepath.Base(pibFile.Filename))
	if err := c.SaveUploadedFile(pibFile, pibPath); err != nil {
		extractFailed(c, err)
		return
	}

	pibResult, err := extractPIBFile(pibPath, variant)
	saveDokumen(user.ID, kodeTps, "pib", pibFile.Filename, pibPath, pibResult, err)
	if err != nil {
		extractFailed(c, err)
		return
	}

	sppbResults := make([]*pabean.SPPBData, 0, len(sppbFiles))
	for _, sf := range sppbFiles {
		path := filepath.Join(baseDir, filepath.Base(sf.Filename))
		if err := c.SaveUploadedFile(sf, path); err != nil {
			extractFailed(c, err)
			return
		}
		res, err := extractSPPBFile(path, variant)
		saveDokumen(user.ID, kodeTps, "sppb", sf.Filename, path, res, err)
		if err != nil {
			extractFailed(c, err)
			return
		}
		sppbResults = append(sppbResults, res)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Ekstraksi berhasil",
		"pib":     pibResult,
		"sppb":    sppbResults,
	})
}

func extractFailed(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  false,
		"message": "Terjadi kesalahan: " + err.Error(),
	})
}

func extractPIBFile(path string, v pabean.Variant) (*pabean.PIBData, error) {
	pages, err := pdftext.Pages(path)
	if err != nil {
		return nil, err
	}
	return pabean.ExtractPIB(pages, v)
}

func extractSPPBFile(path string, v pabean.Variant) (*pabean.SPPBData, error) {
	pages, err := pdftext.Pages(path)
	if err != nil {
		return nil, err
	}
	return pabean.ExtractSPPB(pages, v), nil
}

// saveDokumen records the upload and its extraction outcome. Failures are
// stored too so admins can review problem documents.
func saveDokumen(userID uint, kodeTps, jenis, fileName, storePath string, result interface{}, extractErr error) {
	dok := models.Dokumen{
		UserID:    userID,
		KodeTps:   kodeTps,
		Jenis:     jenis,
		FileName:  fileName,
		StorePath: storePath,
	}
	if extractErr != nil {
		dok.Failed = true
		dok.FailedReason = extractErr.Error()
	} else if result != nil {
		if b, err := json.Marshal(result); err == nil {
			dok.Hasil = b
		}
	}
	// non-fatal: the extraction response is still returned to the caller
	if err := db.Create(&dok).Error; err != nil {
		log.Printf("failed to save dokumen %s (%s): %v", fileName, jenis, err)
	}
}

// listDokumenHandler returns documents; admin sees all, user only their own.
func listDokumenHandler(c *gin.Context) {
	role, _ := c.Get("role")
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var items []models.Dokumen
	q := db.Model(&models.Dokumen{})
	if role != "administrator" {
		q = q.Where("user_id = ?", user.ID)
	}
	if kodeTps := c.Query("kode_tps"); kodeTps != "" {
		q = q.Where("kode_tps = ?", kodeTps)
	}
	if jenis := c.Query("jenis"); jenis != "" {
		q = q.Where("jenis = ?", jenis)
	}
	if err := q.Order("id desc").Limit(100).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// getDokumenHandler returns a single document if admin or owner.
func getDokumenHandler(c *gin.Context) {
	role, _ := c.Get("role")
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id := c.Param("id")
	var dok models.Dokumen
	if err := db.First(&dok, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if role != "administrator" && dok.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, dok)
}
