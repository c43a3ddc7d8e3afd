package utils_test

import (
	"encoding/base64"
	"testing"
	"time"

	"PokerVision/pkg/utils"
)

// Minimal PNG header, enough for content-type sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestValidateFrame(t *testing.T) {
	u := utils.New()

	tests := []struct {
		name    string
		frame   string
		wantErr bool
	}{
		{
			name:    "valid png frame",
			frame:   base64.StdEncoding.EncodeToString(pngHeader),
			wantErr: false,
		},
		{
			name:    "empty frame",
			frame:   "",
			wantErr: true,
		},
		{
			name:    "not base64",
			frame:   "not-base64!!!",
			wantErr: true,
		},
		{
			name:    "not an image",
			frame:   base64.StdEncoding.EncodeToString([]byte("plain text payload")),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := u.ValidateFrame(tt.frame)
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestEncodeDecodeFrame(t *testing.T) {
	u := utils.New()

	original := []byte{0x01, 0x02, 0xff}
	encoded := u.EncodeFrame(original)

	decoded, err := u.DecodeFrame(encoded)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if string(decoded) != string(original) {
		t.Errorf("Round trip mismatch: %v != %v", decoded, original)
	}
}

func TestNewULIDFromTimestampIsSortable(t *testing.T) {
	u := utils.New()

	earlier, err := u.NewULIDFromTimestamp(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("NewULIDFromTimestamp failed: %v", err)
	}
	later, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		t.Fatalf("NewULIDFromTimestamp failed: %v", err)
	}

	if len(earlier) != 26 || len(later) != 26 {
		t.Errorf("Expected 26-char ULIDs, got %q and %q", earlier, later)
	}
	if earlier >= later {
		t.Errorf("ULIDs not time-ordered: %s >= %s", earlier, later)
	}
}
