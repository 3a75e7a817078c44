package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// GeneratePDFBytes renders a generated itinerary as a PDF and returns raw
// bytes — nothing touches the filesystem.
func GeneratePDFBytes(resp ItineraryResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "TripWeaver", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "AI-Powered Travel Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Section Helpers ──────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	text := func(body string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, body, "", "L", false)
		pdf.Ln(3)
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Destination", resp.Destination)
	row("Generated", time.Now().Format("02 Jan 2006, 15:04 UTC"))
	if resp.Description != "" {
		text(resp.Description)
	}

	// ── Itinerary ─────────────────────────────────────────────
	sectionHeader("Day-by-Day Itinerary")
	text(resp.Itinerary)

	if resp.Cuisine != "" {
		sectionHeader("Local Cuisine")
		text(resp.Cuisine)
	}

	// ── Cost Estimate ─────────────────────────────────────────
	if len(resp.EstimatedCost) > 0 {
		sectionHeader("Cost Estimate")
		for _, category := range []string{"Accommodation", "Food", "Activities", "Transportation", "Total"} {
			if amount, ok := resp.EstimatedCost[category]; ok {
				row(category, amount)
			}
		}
		pdf.Ln(2)
	}

	// ── Flights ───────────────────────────────────────────────
	if len(resp.FlightOptions) > 0 {
		sectionHeader("Flight Options")
		for _, f := range resp.FlightOptions {
			row(f.Airline, fmt.Sprintf("%s · %s · %s", f.Route, f.Price, f.Note))
		}
		pdf.Ln(2)
	}

	// ── Hotels ────────────────────────────────────────────────
	if len(resp.HotelOptions) > 0 {
		sectionHeader("Hotel Options")
		for _, h := range resp.HotelOptions {
			row(h.Name, fmt.Sprintf("%s · %s · Rating %s", h.Price, h.Location, h.Rating))
		}
		pdf.Ln(2)
	}

	// ── Weather ───────────────────────────────────────────────
	if len(resp.WeatherForecast) > 0 {
		sectionHeader("Weather Forecast")
		for _, w := range resp.WeatherForecast {
			row(w.Date, fmt.Sprintf("%d°C · %s", w.Temperature, w.Description))
		}
		pdf.Ln(2)
	}

	// ── Travel Notes ──────────────────────────────────────────
	sectionHeader("Travel Notes")
	row("Best time to visit", resp.BestTimeToVisit)
	if resp.FunFact != "" {
		text("Fun fact: " + resp.FunFact)
	}
	if resp.PackingTips != "" {
		text("Packing tips:\n" + resp.PackingTips)
	}

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	footer := "Generated by TripWeaver · Not a booking confirmation · Prices subject to change"
	if containsFallbackData(resp) {
		footer = "Generated by TripWeaver · Contains estimated (fallback) data · Verify before booking"
	}
	pdf.CellFormat(0, 8, footer, "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func containsFallbackData(resp ItineraryResponse) bool {
	for _, f := range resp.FlightOptions {
		if strings.Contains(f.Note, FallbackMarker) {
			return true
		}
	}
	for _, h := range resp.HotelOptions {
		if strings.Contains(h.Amenities, FallbackMarker) {
			return true
		}
	}
	for _, w := range resp.WeatherForecast {
		if strings.Contains(w.Description, "(Fallback)") {
			return true
		}
	}
	return false
}
