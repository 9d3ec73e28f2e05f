package lease

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"habita/models"
	"habita/utils"

	"github.com/julienschmidt/httprouter"
)

const allowedDrift = 24 * 60 * 60 // seconds; documents are checked within a day

// VerifyLeaseQR checks payload leaseID|apartmentID|requesterID|timestamp|HMAC.
func VerifyLeaseQR(payload string) (leaseID, apartmentID, requesterID string, err error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 5 {
		return "", "", "", errors.New("invalid QR format")
	}

	leaseID = parts[0]
	apartmentID = parts[1]
	requesterID = parts[2]
	timestampStr := parts[3]
	signature := parts[4]

	ts, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return "", "", "", errors.New("invalid timestamp")
	}

	now := time.Now().Unix()
	if abs(now-ts) > allowedDrift {
		return "", "", "", errors.New("document code expired or from the future")
	}

	data := fmt.Sprintf("%s|%s|%s|%s", leaseID, apartmentID, requesterID, timestampStr)
	h := hmac.New(sha256.New, []byte(hmacSecret))
	h.Write([]byte(data))
	expectedSig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expectedSig)) {
		return "", "", "", errors.New("invalid signature")
	}

	return leaseID, apartmentID, requesterID, nil
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// VerifyDocument handles GET /api/leases/verify?payload=..., confirming a
// scanned lease document against the store.
func VerifyDocument(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	leaseID, apartmentID, requesterID, err := VerifyLeaseQR(r.URL.Query().Get("payload"))
	if err != nil {
		utils.RespondWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := getLease(ctx, leaseID)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	if req.ApartmentID != apartmentID || req.RequesterID != requesterID || req.Status != models.LeaseApproved {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": false})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"valid":       true,
		"leaseId":     req.LeaseID,
		"apartmentId": req.ApartmentID,
		"type":        req.Type,
	})
}
