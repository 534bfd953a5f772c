package render

import (
	"encoding/json"
	"net/http"

	"rwapool/core"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(v)
}

// Error write error
func Error(w http.ResponseWriter, statusCode, errCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(H{"code": errCode, "msg": err.Error()})
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, -1, err)
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, -1, err)
}

// DomainError map a domain error to a response, keeping the error code
func DomainError(w http.ResponseWriter, err error) {
	if code, ok := err.(core.ErrorCode); ok {
		status := http.StatusBadRequest
		switch code {
		case core.ErrCDPNotFound, core.ErrAuctionNotFound, core.ErrReserveNotFound, core.ErrNotInitialized:
			status = http.StatusNotFound
		case core.ErrOperationForbidden:
			status = http.StatusForbidden
		case core.ErrVersionConflict:
			status = http.StatusConflict
		}

		Error(w, status, int(code), err)
		return
	}

	Error(w, http.StatusInternalServerError, -1, err)
}
