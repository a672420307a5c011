package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/MoosaTae/license-plate-ocr/internal/logger"
	"github.com/MoosaTae/license-plate-ocr/internal/plate"
	"github.com/MoosaTae/license-plate-ocr/internal/render"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
)

// ValidateRequest is the JSON body for POST /api/v1/validate
type ValidateRequest struct {
	Text       string  `json:"text" binding:"required"`
	Confidence float64 `json:"confidence"`
}

// AddPlateRequest is the JSON body for POST /api/v1/plates
type AddPlateRequest struct {
	PlateNumber string `json:"plate_number" binding:"required"`
	Province    string `json:"province" binding:"required"`
	VehicleType string `json:"vehicle_type"`
	Status      string `json:"status"`
}

// handleIndex renders the upload page with the registry statistics
func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index", pageData{
		ConfidenceThreshold: s.cfg.Validation.ConfidenceThreshold,
		RegistrySize:        s.registry.Len(),
		ProvinceCount:       s.provinces.Len(),
		Stats:               s.registry.Stats(),
	})
}

// handleAnalyze accepts an uploaded image, runs the OCR strategy selector,
// validates every detection, and renders the annotated result page.
// Decode and OCR failures are terminal for the request.
func (s *Server) handleAnalyze(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.String(http.StatusBadRequest, "No file uploaded")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.String(http.StatusBadRequest, "Cannot read uploaded file")
		return
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		logger.Warningf("Failed to decode uploaded image %s: %v", fileHeader.Filename, err)
		c.String(http.StatusBadRequest, "Error processing image: cannot decode image")
		return
	}

	selection, err := s.selector.Run(img)
	if err != nil {
		logger.Errorf("OCR failed for %s: %v", fileHeader.Filename, err)
		c.String(http.StatusInternalServerError, fmt.Sprintf("Error processing image: %v", err))
		return
	}

	results := make([]plate.Result, 0, len(selection.Detections))
	passed := 0
	for _, d := range selection.Detections {
		res := s.policy.Validate(d.Text, d.Confidence)
		if res.Pass() {
			passed++
		}
		results = append(results, res)
	}

	annotated := render.Annotate(selection.Image, selection.Detections, results)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, annotated, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("Error encoding result image: %v", err))
		return
	}

	data := pageData{
		ConfidenceThreshold: s.cfg.Validation.ConfidenceThreshold,
		RegistrySize:        s.registry.Len(),
		ProvinceCount:       s.provinces.Len(),
		Stats:               s.registry.Stats(),
		HasResults:          true,
		Method:              selection.Method,
		ResultImage:         base64.StdEncoding.EncodeToString(buf.Bytes()),
		PassedCount:         passed,
		TotalCount:          len(results),
	}
	if len(results) > 0 {
		data.SuccessRate = fmt.Sprintf("%.1f", float64(passed)/float64(len(results))*100)
	}
	for i, res := range results {
		data.Detections = append(data.Detections, detectionView{
			Index:      i + 1,
			Text:       res.DetectedPlate,
			Confidence: fmt.Sprintf("%.3f", res.Confidence),
			Status:     res.Status,
			Pass:       res.Pass(),
			Reason:     res.Reason,
			Match:      res.Match,
			MatchType:  res.MatchType,
			MatchScore: fmt.Sprintf("%.2f", res.MatchScore),
		})
	}

	c.HTML(http.StatusOK, "index", data)
}

// handleValidate validates a text/confidence pair without OCR
func (s *Server) handleValidate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, s.policy.Validate(req.Text, req.Confidence))
}

// handleSearchPlates returns registry records filtered by province
func (s *Server) handleSearchPlates(c *gin.Context) {
	province := c.Query("province")
	if province == "" {
		c.JSON(http.StatusOK, s.registry.Records())
		return
	}
	c.JSON(http.StatusOK, s.registry.SearchByProvince(province))
}

// handleAddPlate appends a record to the registry and persists it
func (s *Server) handleAddPlate(c *gin.Context) {
	var req AddPlateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	rec, err := s.registry.Add(plate.Record{
		PlateNumber: req.PlateNumber,
		Province:    req.Province,
		VehicleType: req.VehicleType,
		Status:      req.Status,
	})
	if err != nil {
		logger.Errorf("Failed to add plate %s: %v", req.PlateNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist record"})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// handleStatistics returns registry statistics
func (s *Server) handleStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, s.registry.Stats())
}
