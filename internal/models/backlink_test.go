package models

import (
	"testing"
	"time"
)

func TestBacklink_SharesCategory(t *testing.T) {
	link := &Backlink{Categories: []string{"Guest Posting", "Micro Blogging"}}

	tests := []struct {
		name       string
		categories []string
		expected   bool
	}{
		{"overlapping set", []string{"Micro Blogging", "Social Bookmarks"}, true},
		{"identical set", []string{"Guest Posting", "Micro Blogging"}, true},
		{"disjoint set", []string{"Profile Creation", "Directory Submission"}, false},
		{"empty set", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := link.SharesCategory(tt.categories); got != tt.expected {
				t.Errorf("SharesCategory(%v) = %v, want %v", tt.categories, got, tt.expected)
			}
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusNotStarted, StatusUnderReview, StatusCompleted, StatusError} {
		if !ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = false, want true", status)
		}
	}
	if ValidStatus("done") {
		t.Error("ValidStatus(done) = true, want false")
	}
	if ValidStatus("") {
		t.Error("ValidStatus(\"\") = true, want false")
	}
}

func TestGoal_Due(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	tests := []struct {
		name     string
		dueDate  *time.Time
		target   int
		progress int
		expected bool
	}{
		{"overdue and short of target", &past, 10, 4, true},
		{"overdue but target met", &past, 10, 10, false},
		{"not yet due", &future, 10, 0, false},
		{"no due date", nil, 10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := &Goal{Target: tt.target, DueDate: tt.dueDate}
			if got := goal.Due(tt.progress, now); got != tt.expected {
				t.Errorf("Due(%d) = %v, want %v", tt.progress, got, tt.expected)
			}
		})
	}
}
