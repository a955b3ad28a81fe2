package mailtm

import (
	"encoding/json"
	"time"
)

// Sender is the from field on a message.
type Sender struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

// MessageSummary is a lightweight inbox listing entry.
type MessageSummary struct {
	ID        string    `json:"id"`
	From      Sender    `json:"from"`
	Subject   string    `json:"subject"`
	Intro     string    `json:"intro,omitempty"`
	Seen      bool      `json:"seen"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageDetail is a full message fetched by id.
type MessageDetail struct {
	ID        string    `json:"id"`
	From      Sender    `json:"from"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"createdAt"`
	HTML      []string  `json:"html,omitempty"`
	Text      string    `json:"text,omitempty"`
}

// The provider wraps collections in a hydra envelope, but the member key and
// element shapes have drifted over time. These boundary functions are the only
// place that deals with the loose JSON - everything past them works with the
// types above.

type collectionEnvelope struct {
	HydraMember []json.RawMessage `json:"hydra:member"`
	Members     []json.RawMessage `json:"members"`
}

func (c collectionEnvelope) members() ([]json.RawMessage, bool) {
	if c.HydraMember != nil {
		return c.HydraMember, true
	}
	if c.Members != nil {
		return c.Members, true
	}
	return nil, false
}

type domainEntry struct {
	Domain   string `json:"domain"`
	IsActive *bool  `json:"isActive"`
}

// parseDomains converts a /domains response body into a list of hostnames.
// Members may be bare strings or {domain, isActive} objects; inactive domains
// are dropped.
func parseDomains(body []byte) ([]string, error) {
	var envelope collectionEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ProtocolError{Endpoint: "domains", Reason: "body is not a json object"}
	}

	raw, ok := envelope.members()
	if !ok {
		return nil, &ProtocolError{Endpoint: "domains", Reason: "missing member list"}
	}

	domains := make([]string, 0, len(raw))
	for _, m := range raw {
		var s string
		if err := json.Unmarshal(m, &s); err == nil {
			if s != "" {
				domains = append(domains, s)
			}
			continue
		}

		var entry domainEntry
		if err := json.Unmarshal(m, &entry); err != nil || entry.Domain == "" {
			return nil, &ProtocolError{Endpoint: "domains", Reason: "member is neither a string nor a domain object"}
		}
		if entry.IsActive != nil && !*entry.IsActive {
			continue
		}
		domains = append(domains, entry.Domain)
	}

	return domains, nil
}

// parseMessageList converts a /messages response body into summaries. An
// empty inbox is a valid, empty list - not an error.
func parseMessageList(body []byte) ([]MessageSummary, error) {
	var envelope struct {
		HydraMember []MessageSummary `json:"hydra:member"`
		Members     []MessageSummary `json:"members"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ProtocolError{Endpoint: "messages", Reason: "body is not a json object"}
	}

	if envelope.HydraMember != nil {
		return envelope.HydraMember, nil
	}
	if envelope.Members != nil {
		return envelope.Members, nil
	}
	return nil, &ProtocolError{Endpoint: "messages", Reason: "missing member list"}
}

// parseMessageDetail converts a /messages/{id} response body into a detail.
func parseMessageDetail(body []byte) (MessageDetail, error) {
	var detail MessageDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return MessageDetail{}, &ProtocolError{Endpoint: "message", Reason: "body is not a message object"}
	}
	if detail.ID == "" {
		return MessageDetail{}, &ProtocolError{Endpoint: "message", Reason: "missing message id"}
	}
	return detail, nil
}

// parseToken extracts the bearer token from a /token response body.
func parseToken(body []byte) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &ProtocolError{Endpoint: "token", Reason: "body is not a json object"}
	}
	if resp.Token == "" {
		return "", &ProtocolError{Endpoint: "token", Reason: "missing token"}
	}
	return resp.Token, nil
}
