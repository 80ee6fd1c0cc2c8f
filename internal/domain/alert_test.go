package domain

import (
	"errors"
	"math"
	"testing"
)

func TestCoordinate_MapLinkUsesShortestForm(t *testing.T) {
	c := Coordinate{Latitude: 40.0, Longitude: -74.0}

	got := c.MapLink("https://www.google.com/maps?q={lat},{lng}")
	if got != "https://www.google.com/maps?q=40,-74" {
		t.Fatalf("unexpected map link %q", got)
	}

	c = Coordinate{Latitude: 51.50735, Longitude: -0.12776}
	got = c.MapLink("geo:{lat},{lng}")
	if got != "geo:51.50735,-0.12776" {
		t.Fatalf("unexpected map link %q", got)
	}
}

func TestNewBroadcastRequest_MissingLocation(t *testing.T) {
	_, err := NewBroadcastRequest("Help", nil, "")

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "location" {
		t.Errorf("expected field=location, got %q", ve.Field)
	}
}

func location(lat, lng float64) *Location {
	return &Location{Latitude: &lat, Longitude: &lng}
}

func TestNewBroadcastRequest_PartialLocation(t *testing.T) {
	lat := 40.0
	cases := map[string]*Location{
		"empty object": {},
		"no longitude": {Latitude: &lat},
		"no latitude":  {Longitude: &lat},
	}

	for name, loc := range cases {
		_, err := NewBroadcastRequest("Help", loc, "")

		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "location" {
			t.Errorf("%s: expected location ValidationError, got %v", name, err)
		}
	}
}

func TestNewBroadcastRequest_ZeroZeroIsAccepted(t *testing.T) {
	req, err := NewBroadcastRequest("Help", location(0, 0), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Coordinate != (Coordinate{}) {
		t.Errorf("unexpected coordinate %+v", req.Coordinate)
	}
}

func TestNewBroadcastRequest_EmptyMessage(t *testing.T) {
	_, err := NewBroadcastRequest("   ", location(40, -74), "")

	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "message" {
		t.Fatalf("expected message ValidationError, got %v", err)
	}
}

func TestNewBroadcastRequest_OutOfRangeCoordinate(t *testing.T) {
	cases := []Coordinate{
		{Latitude: 91, Longitude: 0},
		{Latitude: 0, Longitude: -181},
		{Latitude: math.NaN(), Longitude: 0},
		{Latitude: 0, Longitude: math.Inf(1)},
	}

	for _, c := range cases {
		if _, err := NewBroadcastRequest("Help", location(c.Latitude, c.Longitude), ""); err == nil {
			t.Errorf("expected error for %+v", c)
		}
	}
}

func TestNewBroadcastRequest_Valid(t *testing.T) {
	req, err := NewBroadcastRequest("Help", location(40, -74), " u1 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.OwnerID != "u1" {
		t.Errorf("expected trimmed owner id, got %q", req.OwnerID)
	}
	if req.Coordinate.Latitude != 40 || req.Coordinate.Longitude != -74 {
		t.Errorf("unexpected coordinate %+v", req.Coordinate)
	}
}

func TestBroadcastResult_AllFailed(t *testing.T) {
	empty := &BroadcastResult{}
	if empty.AllFailed() {
		t.Errorf("empty result must not count as all failed")
	}

	failed := &BroadcastResult{
		Outcomes: []DeliveryOutcome{{Recipient: "+1", Error: "boom"}},
		Failed:   1,
	}
	if !failed.AllFailed() {
		t.Errorf("expected AllFailed=true")
	}

	if _, ok := failed.Outcome("+1"); !ok {
		t.Errorf("expected outcome for +1")
	}
	if _, ok := failed.Outcome("+2"); ok {
		t.Errorf("did not expect outcome for +2")
	}
}

func TestDependencyError_Unwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := &DependencyError{Component: "contact store", Err: cause}

	if !errors.Is(err, cause) {
		t.Fatalf("expected DependencyError to unwrap to cause")
	}
	if err.Error() != "contact store unavailable: connection refused" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
