package tempmail

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/suaib92/tempmailr/mailtm"
)

// errorResponse is the stable error shape for every api failure.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// hydraCollection mirrors the provider's collection envelope so the browser
// client can consume our /messages response and the provider's
// interchangeably.
type hydraCollection struct {
	Member     []mailtm.MessageSummary `json:"hydra:member"`
	TotalItems int                     `json:"hydra:totalItems"`
}

// NewMailboxJSON provisions a new mailbox and returns its session to the
// caller. The server retains nothing - the browser owns the session from here.
func (s *Server) NewMailboxJSON(w http.ResponseWriter, r *http.Request) {
	session, err := s.provisioner.Provision(r.Context())
	if err != nil {
		log.Printf("NewMailboxJSON: failed to provision mailbox: %v", err)
		returnJSONError(w, r, provisionStatus(err), "Failed to generate mailbox", err)
		return
	}

	returnJSON(w, r, http.StatusOK, session)
}

// GenerateHealthJSON is a lightweight probe for the generate endpoint.
func (s *Server) GenerateHealthJSON(w http.ResponseWriter, r *http.Request) {
	returnJSON(w, r, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

// GetMessagesJSON lists the inbox for the session token given in the query.
func (s *Server) GetMessagesJSON(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		returnJSONError(w, r, http.StatusBadRequest, "Missing token", nil)
		return
	}

	summaries, err := s.client.ListMessages(r.Context(), token)
	if err != nil {
		log.Printf("GetMessagesJSON: failed to list messages: %v", err)
		returnJSONError(w, r, upstreamStatus(err), "Failed to fetch messages", err)
		return
	}

	if summaries == nil {
		summaries = []mailtm.MessageSummary{}
	}

	returnJSON(w, r, http.StatusOK, hydraCollection{
		Member:     summaries,
		TotalItems: len(summaries),
	})
}

// GetMessageJSON fetches a single full message by id.
func (s *Server) GetMessageJSON(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	id := r.URL.Query().Get("id")
	if token == "" || id == "" {
		returnJSONError(w, r, http.StatusBadRequest, "Missing token or id", nil)
		return
	}

	detail, err := s.client.GetMessage(r.Context(), token, id)
	if err != nil {
		log.Printf("GetMessageJSON: failed to get message %v: %v", id, err)
		returnJSONError(w, r, upstreamStatus(err), "Failed to fetch message", err)
		return
	}

	// The browser renders html bodies inline, so links need to open in a new
	// tab rather than inside the page.
	for i, h := range detail.HTML {
		modified, err := AddTargetBlank(h)
		if err != nil {
			log.Printf("GetMessageJSON: failed to AddTargetBlank: %v", err)
			continue
		}
		detail.HTML[i] = modified
	}

	returnJSON(w, r, http.StatusOK, detail)
}

// provisionStatus maps a provisioning failure onto the status we surface:
// upstream trouble reads as a bad gateway, a timeout as temporary
// unavailability, anything else as an internal error.
func provisionStatus(err error) int {
	var timeoutErr *mailtm.TimeoutError
	if errors.As(err, &timeoutErr) {
		return http.StatusServiceUnavailable
	}

	var upstreamErr *mailtm.UpstreamError
	var authErr *mailtm.AuthError
	if errors.As(err, &upstreamErr) || errors.As(err, &authErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// upstreamStatus passes the provider's own status through where one exists.
func upstreamStatus(err error) int {
	var authErr *mailtm.AuthError
	if errors.As(err, &authErr) {
		return authErr.StatusCode
	}

	var notFoundErr *mailtm.NotFoundError
	if errors.As(err, &notFoundErr) {
		return http.StatusNotFound
	}

	var upstreamErr *mailtm.UpstreamError
	if errors.As(err, &upstreamErr) {
		if upstreamErr.StatusCode == 0 {
			return http.StatusBadGateway
		}
		return upstreamErr.StatusCode
	}

	var timeoutErr *mailtm.TimeoutError
	if errors.As(err, &timeoutErr) {
		return http.StatusGatewayTimeout
	}

	var protocolErr *mailtm.ProtocolError
	if errors.As(err, &protocolErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// returnJSONError returns json with our stable error shape.
func returnJSONError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	returnJSON(w, r, status, resp)
}

func returnJSON(w http.ResponseWriter, r *http.Request, status int, resp interface{}) {
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	err := encoder.Encode(resp)
	if err != nil {
		log.Printf("returnJSON: failed to write response. err=%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}
