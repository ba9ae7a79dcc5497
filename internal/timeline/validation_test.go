package timeline

import (
	"testing"

	"haloradio-admin/pkg/models"
)

func TestValidateEntry(t *testing.T) {
	valid := models.PlaylistEntry{Day: 1, StartHHMM: "09:00", EndHHMM: "10:00", Program: "Pagi"}

	tests := []struct {
		name     string
		mutate   func(e *models.PlaylistEntry)
		wantCode string
	}{
		{"valid", func(e *models.PlaylistEntry) {}, ""},
		{"empty program", func(e *models.PlaylistEntry) { e.Program = "" }, "MISSING_PROGRAM"},
		{"blank program", func(e *models.PlaylistEntry) { e.Program = "   " }, "MISSING_PROGRAM"},
		{"start missing zero", func(e *models.PlaylistEntry) { e.StartHHMM = "9:00" }, "INVALID_TIME_FORMAT"},
		{"end with seconds", func(e *models.PlaylistEntry) { e.EndHHMM = "10:00:00" }, "INVALID_TIME_FORMAT"},
		{"padded start", func(e *models.PlaylistEntry) { e.StartHHMM = " 09:00 " }, ""},
		{"day out of range", func(e *models.PlaylistEntry) { e.Day = 7 }, "INVALID_DAY"},
		{"end before start allowed", func(e *models.PlaylistEntry) { e.EndHHMM = "08:00" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := valid
			tt.mutate(&entry)
			err := ValidateEntry(NormalizeEntry(entry))

			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateEntry() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateEntry() expected %s but got none", tt.wantCode)
			}
			if err.Code != tt.wantCode {
				t.Errorf("ValidateEntry() code = %s, want %s", err.Code, tt.wantCode)
			}
		})
	}
}

func TestProgramCheckedBeforeTimes(t *testing.T) {
	err := ValidateEntry(models.PlaylistEntry{Day: 0, StartHHMM: "x", EndHHMM: "y"})
	if err == nil || err.Message != MsgProgramRequired {
		t.Errorf("expected program message first, got %v", err)
	}
}
