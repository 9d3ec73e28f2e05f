package lease

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"habita/errs"
	"habita/inventory"
	"habita/middleware"
	"habita/models"
	"habita/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

var hmacSecret = docSecret()

func docSecret() string {
	if v := os.Getenv("LEASE_DOC_SECRET"); v != "" {
		return v
	}
	return "change_me_in_production"
}

// GenerateQRPayload returns leaseID|apartmentID|requesterID|timestamp|signature.
func GenerateQRPayload(leaseID, apartmentID, requesterID string) string {
	timestamp := time.Now().Unix()
	data := fmt.Sprintf("%s|%s|%s|%d", leaseID, apartmentID, requesterID, timestamp)

	h := hmac.New(sha256.New, []byte(hmacSecret))
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintLeaseDocument renders an approved request as a PDF summary with an
// embedded verification QR code. Available to the requester and staff.
func PrintLeaseDocument(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	caller, ok := middleware.CallerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	req, err := getLease(ctx, ps.ByName("leaseid"))
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	if caller.ID != req.RequesterID && !caller.Role.IsStaff() {
		utils.RespondWithError(w, errs.Forbiddenf("not your request"))
		return
	}
	if req.Status != models.LeaseApproved {
		utils.RespondWithError(w, errs.InvalidStatef("request is %s, document only available once approved", req.Status))
		return
	}

	apt, err := inventory.GetApartment(ctx, req.ApartmentID)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	qrPayload := GenerateQRPayload(req.LeaseID, req.ApartmentID, req.RequesterID)
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	if req.Type == models.ModeRent {
		pdf.Cell(40, 10, "Lease Agreement Summary")
	} else {
		pdf.Cell(40, 10, "Purchase Agreement Summary")
	}
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Request ID: %s", req.LeaseID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Apartment: %s (floor %d, unit %s)", apt.ApartmentID, apt.Floor, apt.Number))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Contact: %s, %s, %s", req.ContactName, req.ContactEmail, req.ContactPhone))
	pdf.Ln(8)
	if req.Type == models.ModeRent {
		pdf.Cell(0, 10, fmt.Sprintf("Monthly rent: %.2f for %d months", req.MonthlyRent, req.Months))
	} else {
		pdf.Cell(0, 10, fmt.Sprintf("Purchase price: %.2f", req.TotalPrice))
	}
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Approved: %s", req.DecidedAt.Format("2006-01-02")))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{
		ImageType: "PNG",
	}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Println("PrintLeaseDocument PDF error:", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=lease-"+req.LeaseID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
