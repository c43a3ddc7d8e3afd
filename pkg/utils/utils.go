package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateFrame(base64Frame string) error
	EncodeFrame(frame []byte) string
	DecodeFrame(base64Frame string) ([]byte, error)
	ReadFrameFile(path string) (string, error)
}

type utils struct {
	maxFrameSize int
}

func New() IUtils {
	return &utils{
		maxFrameSize: 5 * 1024 * 1024,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateFrame(base64Frame string) error {
	if base64Frame == "" {
		return errors.New("empty frame")
	}

	raw, err := base64.StdEncoding.DecodeString(base64Frame)
	if err != nil {
		return errors.New("frame is not valid base64")
	}

	if len(raw) > u.maxFrameSize {
		return errors.New("frame size exceeds limit")
	}

	contentType := http.DetectContentType(raw)
	if !strings.HasPrefix(contentType, "image/") {
		return errors.New("frame is not an image")
	}

	return nil
}

func (u *utils) EncodeFrame(frame []byte) string {
	return base64.StdEncoding.EncodeToString(frame)
}

func (u *utils) DecodeFrame(base64Frame string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(base64Frame)
}

func (u *utils) ReadFrameFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}
