package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Coordinate is a WGS84 position supplied with a broadcast.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) || c.Latitude < -90 || c.Latitude > 90 {
		return NewValidationError("latitude", "latitude must be between -90 and 90")
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) || c.Longitude < -180 || c.Longitude > 180 {
		return NewValidationError("longitude", "longitude must be between -180 and 180")
	}
	return nil
}

// MapLink fills the {lat} and {lng} placeholders of template with the
// shortest decimal form of the coordinate (40.0 renders as "40").
func (c Coordinate) MapLink(template string) string {
	return strings.NewReplacer(
		"{lat}", strconv.FormatFloat(c.Latitude, 'f', -1, 64),
		"{lng}", strconv.FormatFloat(c.Longitude, 'f', -1, 64),
	).Replace(template)
}

// BroadcastRequest is a validated alert ready for dispatch. OwnerID is
// optional: empty means every registered contact is notified.
type BroadcastRequest struct {
	Message    string
	Coordinate Coordinate
	OwnerID    string
}

// Location is a coordinate as received from a client. Either field may be
// absent, which a zero Coordinate cannot express.
type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Coordinate rejects a location that lacks either field.
func (l *Location) Coordinate() (Coordinate, error) {
	if l == nil {
		return Coordinate{}, NewValidationError("location", "Location is required")
	}
	if l.Latitude == nil || l.Longitude == nil {
		return Coordinate{}, NewValidationError("location", "Location must include latitude and longitude")
	}

	c := Coordinate{Latitude: *l.Latitude, Longitude: *l.Longitude}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}

	return c, nil
}

// NewBroadcastRequest resolves the location of an incoming alert into a
// BroadcastRequest. A missing or partial location is rejected here so that
// the dispatcher never composes a link from a coordinate nobody sent.
func NewBroadcastRequest(message string, location *Location, ownerID string) (BroadcastRequest, error) {
	req := BroadcastRequest{
		Message: message,
		OwnerID: strings.TrimSpace(ownerID),
	}

	if strings.TrimSpace(message) == "" {
		return req, NewValidationError("message", "Message is required")
	}

	coordinate, err := location.Coordinate()
	if err != nil {
		return req, err
	}
	req.Coordinate = coordinate

	return req, nil
}

// DeliveryOutcome is the submission result for one recipient.
type DeliveryOutcome struct {
	Recipient         string `json:"recipient"`
	Name              string `json:"name,omitempty"`
	Succeeded         bool   `json:"succeeded"`
	ProviderReference string `json:"providerReference,omitempty"`
	Error             string `json:"error,omitempty"`
}

// BroadcastResult aggregates one outcome per resolved recipient. Outcomes
// are keyed by Recipient; their order carries no meaning.
type BroadcastResult struct {
	ID        string            `json:"id"`
	Outcomes  []DeliveryOutcome `json:"results"`
	Sent      int               `json:"sent"`
	Failed    int               `json:"failed"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Outcome returns the outcome for a recipient address.
func (r *BroadcastResult) Outcome(recipient string) (DeliveryOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Recipient == recipient {
			return o, true
		}
	}
	return DeliveryOutcome{}, false
}

// AllFailed reports whether at least one send was attempted and none succeeded.
func (r *BroadcastResult) AllFailed() bool {
	return len(r.Outcomes) > 0 && r.Sent == 0
}

// SMSReceipt is what the messaging gateway returns for an accepted message.
type SMSReceipt struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}
