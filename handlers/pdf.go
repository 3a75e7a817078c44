package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripweaver/services"
)

// ExportPDF handles POST /api/itinerary/pdf. The client posts back a
// previously generated itinerary payload and receives it rendered as a PDF.
// Nothing is stored server-side.
func ExportPDF(c *gin.Context) {
	var resp services.ItineraryResponse
	if err := c.ShouldBindJSON(&resp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid itinerary payload: " + err.Error()})
		return
	}
	if resp.Destination == "" || resp.Itinerary == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Itinerary payload must include destination and itinerary"})
		return
	}

	pdfBytes, err := services.GeneratePDFBytes(resp)
	if err != nil {
		log.Printf("❌ PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=tripweaver-itinerary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
