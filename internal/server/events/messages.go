package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types used as the "type" tag and AMQP routing key.
const (
	TypeDownloadServed           = "download_served"
	TypeUnstagedDownloadRequest  = "unstaged_download_requested"
	TypeFileRegistered           = "file_registered"
	TypeFileInternallyRegistered = "file_internally_registered"
)

// Message is the wire envelope for every event: a type tag and the typed
// payload.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// FileDownloadServed is the payload of a download_served event.
type FileDownloadServed struct {
	FileID          string `json:"file_id"`
	DecryptedSHA256 string `json:"decrypted_sha256"`
	DrsURI          string `json:"drs_uri"`
	Context         string `json:"context"`
}

// NonStagedFileRequested is the payload of an unstaged_download_requested
// event.
type NonStagedFileRequested struct {
	FileID          string `json:"file_id"`
	DecryptedSHA256 string `json:"decrypted_sha256"`
	DrsURI          string `json:"drs_uri"`
}

// FileRegisteredForDownload is the payload of a file_registered event.
type FileRegisteredForDownload struct {
	FileID          string    `json:"file_id"`
	DecryptedSHA256 string    `json:"decrypted_sha256"`
	UploadDate      time.Time `json:"upload_date"`
	DrsURI          string    `json:"drs_uri"`
}

// FileInternallyRegistered is the inbound payload announcing a new file to
// register as a DRS object.
type FileInternallyRegistered struct {
	FileID             string    `json:"file_id"`
	DecryptedSHA256    string    `json:"decrypted_sha256"`
	DecryptedSize      int64     `json:"decrypted_size"`
	DecryptionSecretID string    `json:"decryption_secret_id"`
	UploadDate         time.Time `json:"upload_date"`
}

func encodeMessage(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("payload encode error: %w", err)
	}
	return json.Marshal(Message{Type: msgType, Payload: raw})
}

// DecodeRegistration decodes an inbound message. The set of inbound types is
// closed: anything but a file_internally_registered tag is a fatal decode
// error, not a message to skip.
func DecodeRegistration(data []byte) (*FileInternallyRegistered, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("message decode error: %w", err)
	}

	switch msg.Type {
	case TypeFileInternallyRegistered:
		var p FileInternallyRegistered
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, fmt.Errorf("payload decode error: %w", err)
		}
		if p.FileID == "" {
			return nil, fmt.Errorf("payload decode error: missing file_id")
		}
		return &p, nil
	default:
		return nil, fmt.Errorf("unexpected event of type: %q", msg.Type)
	}
}
