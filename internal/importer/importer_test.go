package importer

import (
	"errors"
	"testing"

	"linkledger/internal/models"
)

func row(website, categories string) Row {
	return Row{
		"Website":    website,
		"DA":         "40",
		"SpamScore":  "2",
		"Notes":      "",
		"Status":     "",
		"Categories": categories,
	}
}

func TestValidateHeader(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		missing []string
	}{
		{
			"all required present",
			[]string{"Website", "DA", "SpamScore", "Notes", "Status", "Categories"},
			nil,
		},
		{
			"optional columns too",
			[]string{"Website", "DA", "SpamScore", "Notes", "Status", "Categories", "DR", "Traffic"},
			nil,
		},
		{
			"status missing",
			[]string{"Website", "DA", "SpamScore", "Notes", "Categories"},
			[]string{"Status"},
		},
		{
			"several missing",
			[]string{"Website", "Notes"},
			[]string{"DA", "SpamScore", "Status", "Categories"},
		},
		{
			"case matters",
			[]string{"website", "DA", "SpamScore", "Notes", "Status", "Categories"},
			[]string{"Website"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHeader(tt.headers)
			if tt.missing == nil {
				if err != nil {
					t.Fatalf("ValidateHeader() error = %v, want nil", err)
				}
				return
			}

			var missingErr *MissingColumnsError
			if !errors.As(err, &missingErr) {
				t.Fatalf("ValidateHeader() error = %v, want MissingColumnsError", err)
			}
			if len(missingErr.Columns) != len(tt.missing) {
				t.Fatalf("missing columns = %v, want %v", missingErr.Columns, tt.missing)
			}
			for i, col := range tt.missing {
				if missingErr.Columns[i] != col {
					t.Errorf("missing[%d] = %q, want %q", i, missingErr.Columns[i], col)
				}
			}
		})
	}
}

func TestReconcile_AcceptsValidRow(t *testing.T) {
	accepted, report := Reconcile([]Row{row("Example.COM", "Guest Posting")}, nil)

	if report.Added != 1 || report.Skipped != 0 {
		t.Fatalf("report = %+v, want 1 added, 0 skipped", report)
	}
	if len(accepted) != 1 {
		t.Fatalf("len(accepted) = %d, want 1", len(accepted))
	}
	if accepted[0].Website != "example.com" {
		t.Errorf("website = %q, want normalized %q", accepted[0].Website, "example.com")
	}
	if accepted[0].Status != models.StatusUnderReview {
		t.Errorf("status = %q, want default %q", accepted[0].Status, models.StatusUnderReview)
	}
}

func TestReconcile_CaseInsensitiveCategories(t *testing.T) {
	accepted, report := Reconcile([]Row{
		row("example.com", "guest posting, Directory Submission"),
	}, nil)

	if report.Added != 1 {
		t.Fatalf("report = %+v, want 1 added", report)
	}
	want := []string{"Guest Posting", "Directory Submission"}
	if len(accepted[0].Categories) != len(want) {
		t.Fatalf("categories = %v, want %v", accepted[0].Categories, want)
	}
	for i, cat := range want {
		if accepted[0].Categories[i] != cat {
			t.Errorf("categories[%d] = %q, want canonical %q", i, accepted[0].Categories[i], cat)
		}
	}
}

func TestReconcile_DuplicateInSameFile(t *testing.T) {
	accepted, report := Reconcile([]Row{
		row("example.com", "Guest Posting"),
		row("Example.com ", "Profile Creation"),
	}, nil)

	if report.Added != 1 || report.Skipped != 1 {
		t.Fatalf("report = %+v, want 1 added, 1 skipped", report)
	}
	if len(accepted) != 1 {
		t.Fatalf("len(accepted) = %d, want 1", len(accepted))
	}
	if report.Skips[0].Reason != ReasonDuplicateInFile {
		t.Errorf("skip reason = %q, want %q", report.Skips[0].Reason, ReasonDuplicateInFile)
	}
	if report.Skips[0].Website != "example.com" {
		t.Errorf("skip website = %q, want %q", report.Skips[0].Website, "example.com")
	}
}

func TestReconcile_AlreadyExistsInDatabase(t *testing.T) {
	existing := []models.Backlink{
		{Website: "example.com", Categories: []string{"Guest Posting"}},
	}

	_, report := Reconcile([]Row{row("EXAMPLE.com", "Guest Posting, Micro Blogging")}, existing)

	if report.Added != 0 || report.Skipped != 1 {
		t.Fatalf("report = %+v, want 0 added, 1 skipped", report)
	}
	if report.Skips[0].Reason != ReasonAlreadyExists {
		t.Errorf("skip reason = %q, want %q", report.Skips[0].Reason, ReasonAlreadyExists)
	}
}

func TestReconcile_CrossCategoryIndependence(t *testing.T) {
	// A website already present under Guest Posting can still be imported
	// into Profile Creation: duplicate detection needs category overlap.
	existing := []models.Backlink{
		{Website: "example.com", Categories: []string{"Guest Posting"}},
	}

	accepted, report := Reconcile([]Row{row("example.com", "Profile Creation")}, existing)

	if report.Added != 1 || report.Skipped != 0 {
		t.Fatalf("report = %+v, want 1 added, 0 skipped", report)
	}
	if accepted[0].Categories[0] != "Profile Creation" {
		t.Errorf("categories = %v, want [Profile Creation]", accepted[0].Categories)
	}
}

func TestReconcile_SkipReasons(t *testing.T) {
	tests := []struct {
		name   string
		row    Row
		reason string
	}{
		{"empty website", row("", "Guest Posting"), ReasonWebsiteMissing},
		{"whitespace website", row("   ", "Guest Posting"), ReasonWebsiteMissing},
		{"empty categories", row("example.com", ""), ReasonCategoriesMissing},
		{"whitespace categories", row("example.com", "  "), ReasonCategoriesMissing},
		{"no token matches", row("example.com", "Forum Posting, Comments"), ReasonInvalidCategories},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accepted, report := Reconcile([]Row{tt.row}, nil)
			if len(accepted) != 0 {
				t.Fatalf("len(accepted) = %d, want 0", len(accepted))
			}
			if report.Skipped != 1 {
				t.Fatalf("skipped = %d, want 1", report.Skipped)
			}
			if report.Skips[0].Reason != tt.reason {
				t.Errorf("reason = %q, want %q", report.Skips[0].Reason, tt.reason)
			}
		})
	}
}

func TestReconcile_DiscardsUnmatchedTokens(t *testing.T) {
	accepted, report := Reconcile([]Row{
		row("example.com", "Guest Posting, Forum Posting"),
	}, nil)

	if report.Added != 1 {
		t.Fatalf("report = %+v, want 1 added", report)
	}
	if len(accepted[0].Categories) != 1 || accepted[0].Categories[0] != "Guest Posting" {
		t.Errorf("categories = %v, want [Guest Posting]", accepted[0].Categories)
	}
}

func TestReconcile_PreservesInputOrder(t *testing.T) {
	accepted, report := Reconcile([]Row{
		row("b.com", "Guest Posting"),
		row("", "Guest Posting"),
		row("a.com", "Micro Blogging"),
	}, nil)

	if report.Added != 2 || report.Skipped != 1 {
		t.Fatalf("report = %+v, want 2 added, 1 skipped", report)
	}
	if accepted[0].Website != "b.com" || accepted[1].Website != "a.com" {
		t.Errorf("accepted order = [%s, %s], want [b.com, a.com]", accepted[0].Website, accepted[1].Website)
	}
}

func TestReconcile_OptionalFieldsDefaultEmpty(t *testing.T) {
	r := row("example.com", "Guest Posting")
	// no DR/Traffic/Email/Price/Niche/PublishedURL keys at all
	accepted, _ := Reconcile([]Row{r}, nil)

	b := accepted[0]
	for name, got := range map[string]string{
		"DR": b.DR, "Traffic": b.Traffic, "Email": b.Email,
		"Price": b.Price, "Niche": b.Niche, "PublishedURL": b.PublishedURL,
	} {
		if got != "" {
			t.Errorf("%s = %q, want empty", name, got)
		}
	}
}

func TestReconcile_KeepsOptionalColumnsForAnyCategory(t *testing.T) {
	r := row("example.com", "Profile Creation")
	r["DR"] = "55"
	r["Traffic"] = "1000"
	r["Price"] = "99"

	accepted, _ := Reconcile([]Row{r}, nil)

	b := accepted[0]
	if b.DR != "55" || b.Traffic != "1000" || b.Price != "99" {
		t.Errorf("optional columns dropped: DR=%q Traffic=%q Price=%q", b.DR, b.Traffic, b.Price)
	}
}

func TestReconcile_KeepsValidStatus(t *testing.T) {
	r := row("example.com", "Guest Posting")
	r["Status"] = "Completed"
	accepted, _ := Reconcile([]Row{r}, nil)

	if accepted[0].Status != models.StatusCompleted {
		t.Errorf("status = %q, want %q", accepted[0].Status, models.StatusCompleted)
	}
}
