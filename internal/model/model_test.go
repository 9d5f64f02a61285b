package model

import (
	"testing"
	"time"
)

func TestSession_ExpiredAt(t *testing.T) {
	expires := time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC)
	s := &Session{Expires: expires}

	if s.ExpiredAt(expires.Add(-time.Second)) {
		t.Error("session should be valid one second before expiry")
	}
	if !s.ExpiredAt(expires) {
		t.Error("session should be expired exactly at expiry")
	}
	if !s.ExpiredAt(expires.Add(time.Second)) {
		t.Error("session should be expired after expiry")
	}
}

func TestProfileUpdate_Apply(t *testing.T) {
	first := "Ada"
	u := &User{FirstName: "Old", LastName: "Keep", IsActive: true}

	ProfileUpdate{FirstName: &first, Settings: map[string]interface{}{"theme": "dark"}}.Apply(u)

	if u.FirstName != "Ada" {
		t.Errorf("FirstName = %q", u.FirstName)
	}
	if u.LastName != "Keep" {
		t.Errorf("LastName changed to %q", u.LastName)
	}
	if u.Settings["theme"] != "dark" {
		t.Errorf("Settings = %v", u.Settings)
	}
	if !u.IsActive {
		t.Error("IsActive must not change")
	}
}

func TestProfileUpdate_IsEmpty(t *testing.T) {
	if !(ProfileUpdate{}).IsEmpty() {
		t.Error("zero update should be empty")
	}
	name := ""
	if (ProfileUpdate{LastName: &name}).IsEmpty() {
		t.Error("update with a field should not be empty")
	}
}
